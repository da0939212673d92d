// Package common contains shared constants and sentinel errors used across
// accountkeeper components.
package common

// AccessTokenHeaderName is the HTTP header carrying the raw access token on
// protected requests. Values are sent without the "Bearer " scheme prefix.
const AccessTokenHeaderName = "Authorization"

// BearerPrefix is tolerated in front of the token for clients that send the
// standard scheme.
const BearerPrefix = "Bearer "
