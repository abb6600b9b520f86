// Package openapi translates the registration rule table into an OpenAPI 3
// object schema so external presentation layers and API gateways can share
// the same constraints as the in-process validator.
package openapi
