package operations

// GraphQL documents for the Tackle Hunger API. Field selections mirror the
// schema exposed to AI tooling.

const querySitesForAI = `
query getSitesForAI($limit: Int!, $offset: Int!) {
    sitesForAI(limit: $limit, offset: $offset) {
        id
        name
        streetAddress
        addressLine2
        city
        state
        zip
        country
        organizationId
        publicEmail
        publicPhone
        website
        description
        serviceArea
        acceptsFoodDonations
        status
        ein
        organization {
            id
            name
            streetAddress
            addressLine2
            city
            state
            zip
        }
    }
}
`

const queryOrganizationsForAI = `
query getOrganizationsForAI {
    organizationsForAI {
        id
        name
        streetAddress
        addressLine2
        city
        state
        zip
        publicEmail
        publicPhone
        website
        description
        ein
        sites {
            id
            organizationId
            name
            streetAddress
            addressLine2
            city
            state
            zip
            lat
            lng
            publicEmail
            publicPhone
            website
            description
            serviceArea
            acceptsFoodDonations
            status
            ein
        }
    }
}
`

const queryOrganizationForAI = `
query getOrganizationForAI($organizationId: ID!) {
    organizationForAI(id: $organizationId) {
        id
        name
        streetAddress
        addressLine2
        city
        state
        zip
        sites {
            id
            name
            streetAddress
            addressLine2
            city
            state
            zip
        }
    }
}
`

const mutationUpdateSiteFromAI = `
mutation updateSiteFromAI($siteId: String!, $input: siteInputForAIUpdate!) {
    updateSiteFromAI(siteId: $siteId, input: $input) {
        id
        name
        streetAddress
        addressLine2
        city
        state
        zip
    }
}
`

const mutationUpdateOrganizationFromAI = `
mutation updateOrganizationFromAI($organizationId: String!, $input: organizationInputUpdate!) {
    updateOrganizationFromAI(organizationId: $organizationId, input: $input) {
        id
        name
        streetAddress
        addressLine2
        city
        state
        zip
    }
}
`
