// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the client-side session manager.
//
// The manager owns the bearer token: it restores it from the preference
// store on startup, obtains it from the auth endpoint on login, and clears
// it on logout or when the stored token is expired or undecodable.
//
// # Key Types
//
//   - Manager: Session lifecycle (Restore, Login, Logout) and derived state
//   - Claims: Decoded token payload (user ID, department, expiry)
//
// # Usage
//
//	mgr := auth.NewManager(store, api)
//	mgr.Restore()
//	if !mgr.Authenticated() {
//	    err := mgr.Login(ctx, userID, password)
//	    // ...
//	}
//
// # Not a security boundary
//
// The token is decoded without signature verification, purely to derive UI
// state (who is logged in, until when). Every authenticated request is
// verified by the backend; a forged or stale token gets a 401 there. Nothing
// in this package must ever be used as an authorization check.
package auth
