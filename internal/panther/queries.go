package panther

// GraphQL documents for the Panther public API. Mutations and queries are
// kept verbatim as the API expects them; handlers bind variables through
// RunGraphQL.

const alertsQuery = `
query FirstPageOfAllAlerts($input: AlertsInput!) {
    alerts(input: $input) {
        edges {
            node {
                id
                title
                severity
                status
                createdAt
                type
                description
                reference
                runbook
                firstEventOccurredAt
                lastReceivedEventAt
                origin {
                    ... on Detection {
                        id
                        name
                    }
                }
            }
        }
        pageInfo {
            hasNextPage
            endCursor
            hasPreviousPage
            startCursor
        }
    }
}
`

const alertByIDQuery = `
query GetAlertById($id: ID!) {
    alert(id: $id) {
        id
        title
        severity
        status
        createdAt
        type
        description
        reference
        runbook
        firstEventOccurredAt
        lastReceivedEventAt
        updatedAt
        origin {
            ... on Detection {
                id
                name
            }
        }
    }
}
`

const updateAlertStatusMutation = `
mutation UpdateAlertStatusById($input: UpdateAlertStatusByIdInput!) {
    updateAlertStatusById(input: $input) {
        alerts {
            id
            status
            updatedAt
        }
    }
}
`

const addAlertCommentMutation = `
mutation CreateAlertComment($input: CreateAlertCommentInput!) {
    createAlertComment(input: $input) {
        comment {
            id
            body
            createdAt
            createdBy {
                ... on User {
                    id
                    email
                    givenName
                    familyName
                }
            }
            format
        }
    }
}
`

const updateAlertsAssigneeMutation = `
mutation UpdateAlertsAssigneeById($input: UpdateAlertsAssigneeByIdInput!) {
    updateAlertsAssigneeById(input: $input) {
        alerts {
            id
            assignee {
                id
                email
                givenName
                familyName
            }
        }
    }
}
`

const sourcesQuery = `
query Sources($input: SourcesInput) {
    sources(input: $input) {
        edges {
            node {
                integrationId
                integrationLabel
                integrationType
                isEditable
                isHealthy
                lastEventProcessedAtTime
                lastEventReceivedAtTime
                lastModified
                logTypes
                ... on S3LogIntegration {
                    awsAccountId
                    kmsKey
                    logProcessingRole
                    logStreamType
                    logStreamTypeOptions {
                        jsonArrayEnvelopeField
                    }
                    managedBucketNotifications
                    s3Bucket
                    s3Prefix
                    s3PrefixLogTypes {
                        prefix
                        logTypes
                        excludedPrefixes
                    }
                    stackName
                }
            }
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}
`

const executeDataLakeQueryMutation = `
mutation ExecuteDataLakeQuery($input: ExecuteDataLakeQueryInput!) {
    executeDataLakeQuery(input: $input) {
        id
    }
}
`

const dataLakeQueryQuery = `
query GetDataLakeQuery($id: ID!, $root: Boolean = false) {
    dataLakeQuery(id: $id, root: $root) {
        id
        status
        message
        sql
        startedAt
        completedAt
        results(input: { pageSize: 999 }) {
            edges {
                node
            }
            pageInfo {
                hasNextPage
                endCursor
            }
            columnInfo {
                order
                types
            }
            stats {
                bytesScanned
                executionTime
                rowCount
            }
        }
    }
}
`

const allDatabaseEntitiesQuery = `
query AllDatabaseEntities {
  dataLakeDatabases {
    name
    description
    tables {
      name
      description
      columns {
        name
        description
        type
      }
    }
  }
}
`

const listUsersQuery = `
query ListUsers {
    users {
        id
        email
        givenName
        familyName
        createdAt
        lastLoggedInAt
        status
        enabled
        role {
            id
            name
            permissions
        }
    }
}
`

const metricsAlertsPerSeverityQuery = `
query Metrics($input: MetricsInput!) {
    metrics(input: $input) {
        alertsPerSeverity {
            label
            value
            breakdown
        }
        totalAlerts
    }
}
`

const metricsAlertsPerRuleQuery = `
query Metrics($input: MetricsInput!) {
    metrics(input: $input) {
        alertsPerRule {
            entityId
            label
            value
        }
        totalAlerts
    }
}
`

const metricsBytesProcessedQuery = `
query Metrics($input: MetricsInput!) {
    metrics(input: $input) {
        bytesProcessedPerSource {
            label
            value
            breakdown
        }
    }
}
`

const listSchemasQuery = `
query ListSchemas($input: SchemasInput!) {
    schemas(input: $input) {
        edges {
            node {
                name
                description
                revision
                isArchived
                isManaged
                referenceURL
                createdAt
                updatedAt
            }
        }
    }
}
`

const schemaDetailsQuery = `
query GetSchemaDetails($name: String!) {
    schemas(input: { contains: $name, isArchived: false }) {
        edges {
            node {
                name
                description
                spec
                version
                revision
                isArchived
                isManaged
                isFieldDiscoveryEnabled
                referenceURL
                discoveredSpec
                createdAt
                updatedAt
            }
        }
    }
}
`
