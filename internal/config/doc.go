// Package config resolves CapSync's configuration: the ~/.capsync/ home
// directory, the registry root, and the optional external trigger table.
// Values come from environment variables (CAPSYNC_*), the config file, and
// built-in defaults, in that order.
package config
