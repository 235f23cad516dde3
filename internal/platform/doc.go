// Package platform resolves OS-specific locations used by the app.
package platform
