// Package platform contains OS integration: the downloads directory, saving
// and revealing files, and logger construction.
package platform
