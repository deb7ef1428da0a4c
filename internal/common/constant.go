package common

// AuthorizationHeaderName carries the bearer access token on inbound
// requests.
const AuthorizationHeaderName = "Authorization"

// RefreshTokenHeaderName carries the refresh token presented to the
// access-token grant endpoint.
const RefreshTokenHeaderName = "x-refresh-token"
