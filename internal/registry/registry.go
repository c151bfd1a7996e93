package registry

import (
	"sort"
	"sync"
	"unsafe"

	"panthermcp/internal/permissions"
	"panthermcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Host is the registration surface of the MCP host framework. It is satisfied
// by *server.MCPServer.
type Host interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
	AddPrompt(prompt mcp.Prompt, handler server.PromptHandlerFunc)
	AddResource(resource mcp.Resource, handler server.ResourceHandlerFunc)
}

// ToolDef bundles a tool definition with its handler and the permission spec
// the host's authorization layer consumes before dispatch.
type ToolDef struct {
	Tool        mcp.Tool
	Handler     server.ToolHandlerFunc
	Permissions permissions.Spec
	ReadOnly    bool
}

// PromptDef bundles a prompt definition with its handler.
type PromptDef struct {
	Prompt  mcp.Prompt
	Handler server.PromptHandlerFunc
}

// ResourceDef bundles a resource definition with its handler. The resource
// URI is the identity of the definition.
type ResourceDef struct {
	Resource mcp.Resource
	Handler  server.ResourceHandlerFunc
}

// Registry is the collection of registered capabilities. It is safe for
// concurrent use, although in practice all registration happens during
// single-threaded startup.
type Registry struct {
	mu sync.RWMutex

	tools       map[uintptr]ToolDef
	prompts     map[uintptr]PromptDef
	promptOrder []uintptr

	resources     map[string]ResourceDef
	resourceOrder []string
}

// New creates an empty capability registry.
func New() *Registry {
	return &Registry{
		tools:     make(map[uintptr]ToolDef),
		prompts:   make(map[uintptr]PromptDef),
		resources: make(map[string]ResourceDef),
	}
}

// handlerKey returns the identity of a handler function. Functions are not
// comparable in Go, and the code pointer reflect exposes is shared by every
// closure created from one func literal once the compiler stops inlining the
// enclosing call. The funcval address carried in the interface data word is
// unique per closure, so it stands in for object identity.
func handlerKey(handler any) uintptr {
	return uintptr((*[2]unsafe.Pointer)(unsafe.Pointer(&handler))[1])
}

// RegisterTool adds a tool to the registry. Registering the identical handler
// twice is a no-op. Two distinct handlers sharing a display name are both
// kept and both flushed; the collision is logged so it does not go unnoticed.
// Registration never fails.
func (r *Registry) RegisterTool(def ToolDef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := handlerKey(def.Handler)
	if _, exists := r.tools[key]; exists {
		logging.Debug("Registry", "Tool %s already registered, skipping", def.Tool.Name)
		return
	}

	for _, existing := range r.tools {
		if existing.Tool.Name == def.Tool.Name {
			logging.Warn("Registry", "Duplicate tool name %q registered by a second handler; both will be flushed", def.Tool.Name)
		}
	}

	r.tools[key] = def
}

// RegisterPrompt adds a prompt to the registry. Registering the identical
// handler twice is a no-op.
func (r *Registry) RegisterPrompt(def PromptDef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := handlerKey(def.Handler)
	if _, exists := r.prompts[key]; exists {
		logging.Debug("Registry", "Prompt %s already registered, skipping", def.Prompt.Name)
		return
	}

	r.prompts[key] = def
	r.promptOrder = append(r.promptOrder, key)
}

// RegisterResource adds a resource to the registry. The URI is the dedup key
// and the last registration for a URI wins.
func (r *Registry) RegisterResource(def ResourceDef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uri := def.Resource.URI
	if _, exists := r.resources[uri]; !exists {
		r.resourceOrder = append(r.resourceOrder, uri)
	}
	r.resources[uri] = def
}

// sortedTools returns the tool definitions sorted lexicographically by name.
// Duplicated names keep a stable relative order.
func (r *Registry) sortedTools() []ToolDef {
	defs := make([]ToolDef, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Tool.Name < defs[j].Tool.Name
	})
	return defs
}

// Flush registers every capability with the host: tools sorted by name for a
// deterministic flush order, prompts and resources in registration order.
// Each host registration call is fire-and-forget; the registry does not
// verify the host accepted it. Flush may be called repeatedly.
func (r *Registry) Flush(host Host) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := r.sortedTools()
	logging.Info("Registry", "Flushing %d tools, %d prompts, %d resources", len(tools), len(r.prompts), len(r.resources))

	for _, def := range tools {
		tool := def.Tool
		if def.ReadOnly {
			readOnly := true
			tool.Annotations.ReadOnlyHint = &readOnly
		}
		logging.Debug("Registry", "Registering tool: %s", tool.Name)
		host.AddTool(tool, def.Handler)
	}

	for _, key := range r.promptOrder {
		def := r.prompts[key]
		logging.Debug("Registry", "Registering prompt: %s", def.Prompt.Name)
		host.AddPrompt(def.Prompt, def.Handler)
	}

	for _, uri := range r.resourceOrder {
		def := r.resources[uri]
		logging.Debug("Registry", "Registering resource: %s", uri)
		host.AddResource(def.Resource, def.Handler)
	}
}

// ListToolNames returns all registered tool names, sorted. Duplicate display
// names appear once per registered handler.
func (r *Registry) ListToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for _, def := range r.tools {
		names = append(names, def.Tool.Name)
	}
	sort.Strings(names)
	return names
}

// ListPromptNames returns all registered prompt names, sorted.
func (r *Registry) ListPromptNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.prompts))
	for _, def := range r.prompts {
		names = append(names, def.Prompt.Name)
	}
	sort.Strings(names)
	return names
}

// ListResourceURIs returns all registered resource URIs, sorted.
func (r *Registry) ListResourceURIs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uris := make([]string, 0, len(r.resources))
	for uri := range r.resources {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Tools returns the registered tool definitions in flush (name) order. Used
// by external introspection such as the capabilities CLI command.
func (r *Registry) Tools() []ToolDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedTools()
}
