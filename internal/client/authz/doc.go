// Package authz decides, per outgoing API request, whether the bearer
// credential is attached.
//
// The decision is split in two:
//
//   - Policy.Classify is a pure function from (method, path) to Public or
//     Protected, driven by an explicit, ordered allow table of public routes.
//   - Transport is an http.RoundTripper stage that applies the decision:
//     public requests never carry a credential, protected requests carry
//     "Authorization: Bearer <token>" when a token is available and are
//     dispatched unchanged otherwise (the server rejects them).
//
// The token is read from a TokenSource on every request. In the CLI that is
// StorageTokenSource, which looks at the persisted "access_token" value, so
// the session store and the authorizer share state only through storage.
package authz
