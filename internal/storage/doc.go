// Package storage provides the session.Storage backends: a JSON file per key,
// a key/value table on SQLite or Postgres, Redis, and a signed browser cookie.
//
// Open builds a server-side or local backend from configuration. The cookie
// backend is bound to one HTTP request and is built with NewCookie instead.
package storage
