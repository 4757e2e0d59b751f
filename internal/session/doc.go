// Package session persists catalog credentials as small per-user JSON files
// named {username}.session, mirroring how returning users expect to skip the
// API key prompt.
package session
