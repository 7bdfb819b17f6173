package config

import (
	"fmt"
	"sort"
	"strings"
)

// Default values shared between the key registry, ApplyDefaults and the
// generated sample configuration.
const (
	DefaultStorageType    = "local"
	DefaultPort           = 8880
	DefaultLogLevel       = "Info"
	DefaultTokenValidity  = 86400 // seconds, 1 day
	DefaultChunkSize      = 4194304
	DefaultMonitoringPort = 9090

	DefaultWOPISecretPath   = "/etc/wopi/wopisecret"
	DefaultIOPSecretPath    = "/etc/wopi/iopsecret"
	DefaultLocalStoragePath = "/var/wopi_local_storage"
)

// Kind describes the value type a configuration key expects.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindPath:
		return "path"
	default:
		return "unknown"
	}
}

// Key describes one documented configuration key.
type Key struct {
	// Section and Name locate the key in the INI file.
	Section string
	Name    string

	// Kind is the expected value type.
	Kind Kind

	// Default is the value applied when the key is absent (nil for none).
	Default any

	// RestartRequired marks keys whose changes only take effect after a
	// process restart. All other keys are re-read by the reload manager.
	RestartRequired bool

	// Description documents the key for generated sample files.
	Description string
}

// Path returns the viper-style dotted key.
func (k Key) Path() string {
	return k.Section + "." + k.Name
}

// registry lists every documented configuration key.
//
// Runtime-refreshable keys mirror what the original gateway re-reads in its
// refresh loop; everything touching sockets, TLS or the shared secrets is
// restart-required.
var registry = []Key{
	{Section: "general", Name: "storagetype", Kind: KindString, Default: DefaultStorageType, RestartRequired: true,
		Description: "storage backend implementation (local, xroot)"},
	{Section: "general", Name: "port", Kind: KindInt, Default: DefaultPort, RestartRequired: true,
		Description: "TCP port the server listens on"},
	{Section: "general", Name: "nonofficetypes", Kind: KindString, Default: "", RestartRequired: false,
		Description: "space-separated list of file extensions treated as non-Office documents"},
	{Section: "general", Name: "loglevel", Kind: KindString, Default: DefaultLogLevel, RestartRequired: false,
		Description: "verbosity: Debug, Info, Warning, Error or Critical; Debug also enables the framework debug mode"},
	{Section: "general", Name: "tokenvalidity", Kind: KindInt, Default: DefaultTokenValidity, RestartRequired: false,
		Description: "access-token lifetime in seconds"},
	{Section: "general", Name: "allowedclients", Kind: KindString, Default: "", RestartRequired: false,
		Description: "space-separated hostnames authorized to request access tokens"},
	{Section: "general", Name: "wopiurl", Kind: KindString, Default: "", RestartRequired: false,
		Description: "externally visible URL of this server"},
	{Section: "general", Name: "downloadurl", Kind: KindString, Default: "", RestartRequired: false,
		Description: "URL offered to the frontend for plain downloads"},

	{Section: "security", Name: "usehttps", Kind: KindBool, Default: false, RestartRequired: true,
		Description: "toggles TLS termination"},
	{Section: "security", Name: "wopicert", Kind: KindPath, Default: "", RestartRequired: true,
		Description: "TLS certificate path, required when usehttps is set"},
	{Section: "security", Name: "wopikey", Kind: KindPath, Default: "", RestartRequired: true,
		Description: "TLS key path, required when usehttps is set"},
	{Section: "security", Name: "wopisecretfile", Kind: KindPath, Default: DefaultWOPISecretPath, RestartRequired: true,
		Description: "path of the shared secret used to sign access tokens; requires restart on change"},
	{Section: "security", Name: "iopsecretfile", Kind: KindPath, Default: DefaultIOPSecretPath, RestartRequired: true,
		Description: "path of the shared secret for bridge-to-bridge calls; requires restart on change"},

	{Section: "local", Name: "storagehomepath", Kind: KindPath, Default: DefaultLocalStoragePath, RestartRequired: true,
		Description: "root filesystem path for the local storage backend"},

	{Section: "xroot", Name: "storageserver", Kind: KindString, Default: "", RestartRequired: true,
		Description: "URL of the remote xroot storage endpoint"},
	{Section: "xroot", Name: "storagehomepath", Kind: KindPath, Default: "", RestartRequired: true,
		Description: "home path prefix on the xroot storage"},

	{Section: "io", Name: "chunksize", Kind: KindInt, Default: DefaultChunkSize, RestartRequired: true,
		Description: "I/O chunk size hint in bytes"},

	{Section: "monitoring", Name: "enabled", Kind: KindBool, Default: false, RestartRequired: true,
		Description: "toggles the Prometheus metrics endpoint"},
	{Section: "monitoring", Name: "port", Kind: KindInt, Default: DefaultMonitoringPort, RestartRequired: true,
		Description: "metrics endpoint port"},
}

// Keys returns all documented configuration keys, ordered by section then
// name.
func Keys() []Key {
	keys := make([]Key, len(registry))
	copy(keys, registry)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Section != keys[j].Section {
			return keys[i].Section < keys[j].Section
		}
		return keys[i].Name < keys[j].Name
	})
	return keys
}

// Lookup finds a documented key by section and name.
func Lookup(section, name string) (Key, bool) {
	section = strings.ToLower(section)
	name = strings.ToLower(name)
	for _, k := range registry {
		if k.Section == section && k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// SectionKeys returns the documented keys of one section.
func SectionKeys(section string) []Key {
	var keys []Key
	for _, k := range Keys() {
		if k.Section == section {
			keys = append(keys, k)
		}
	}
	return keys
}

// UnknownKeys returns the dotted paths of keys present in the loaded
// settings but absent from the registry. Unknown keys are preserved on
// round-trip; they are only reported so typos surface during validation.
func UnknownKeys(settings map[string]any) []string {
	var unknown []string
	for section, value := range settings {
		sectionMap, ok := value.(map[string]any)
		if !ok {
			// A top-level scalar has no section; the file format does
			// not document any.
			unknown = append(unknown, section)
			continue
		}
		for name := range sectionMap {
			if _, found := Lookup(section, name); !found {
				unknown = append(unknown, fmt.Sprintf("%s.%s", section, name))
			}
		}
	}
	sort.Strings(unknown)
	return unknown
}
