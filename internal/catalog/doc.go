// Package catalog talks to the RetroAchievements web API.
//
// Only the two endpoints the reconciliation engine needs are wrapped: the
// per-system game list (with hash manifests) and the per-game hash records.
// Credentials ride along as query parameters on every call.
package catalog
