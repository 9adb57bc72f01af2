// Package services implements catalog API clients used by the scrape engine.
//
// [SpotifyService] authenticates with the client-credentials grant (app-only,
// no user login) and caches the resulting token in a local file so repeated
// runs skip the token exchange. Search requests are throttled through a
// token-bucket rate limiter.
//
// The [Searcher] interface is the seam between the engine and the HTTP
// client; tests substitute a fake.
package services
