// Package auth provides bearer-token authentication for the catalog API.
//
// Users register with an email and password; passwords are stored as bcrypt
// hashes. Login issues an HMAC-signed JWT carrying the identity and role
// claim, which the middleware verifies on every protected request. Role
// checks fail closed: a request without a valid identity never reaches the
// role comparison.
package auth
