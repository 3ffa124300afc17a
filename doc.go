// Package authcore implements the authentication and session-invalidation
// core of the Plateful backend: token issuance on signup and login, a
// verification gate for protected requests, and a revocation registry that
// makes logout effective before a token's natural expiry.
//
// The package is library-first. A Service is assembled with New():
//
//	svc, err := authcore.New().
//		WithConfig(cfg).
//		WithCredentialStore(store).
//		WithRedis(rdb).
//		WithLogger(log).
//		Build()
//
// HTTP transports live in the middleware (net/http) and httpapi (Echo)
// packages; credential store implementations live under store/.
package authcore
