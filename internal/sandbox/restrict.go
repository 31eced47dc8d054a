package sandbox

import (
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

// allowedPackages is the stdlib surface scripts may import. Everything with
// ambient authority is absent: os, os/exec, io, net, net/http, syscall,
// unsafe, plugin, runtime. The interpreter only ever sees the filtered
// symbol set, so a forbidden import fails at compile time.
var allowedPackages = map[string]bool{
	"bytes":           true,
	"crypto/md5":      true,
	"crypto/sha1":     true,
	"crypto/sha256":   true,
	"encoding/base64": true,
	"encoding/hex":    true,
	"encoding/json":   true,
	"fmt":             true,
	"hash/crc32":      true,
	"math":            true,
	"net/url":         true, // query/path escaping only; no transport lives here
	"regexp":          true,
	"sort":            true,
	"strconv":         true,
	"strings":         true,
	"time":            true,
	"unicode":         true,
	"unicode/utf8":    true,
}

// PayloadImportPath is the import path scripts use to reference the
// capability object: `import "boop"` / `func Main(p *boop.Payload)`.
const PayloadImportPath = "boop"

// Symbols returns the capability-restricted symbol set handed to every
// interpreter: the whitelisted stdlib slice plus the boop payload package.
func Symbols() interp.Exports {
	out := make(interp.Exports, len(allowedPackages)+1)
	for key, symbols := range stdlib.Symbols {
		slash := strings.LastIndex(key, "/")
		if slash < 0 {
			continue
		}
		if allowedPackages[key[:slash]] {
			out[key] = symbols
		}
	}
	out[PayloadImportPath+"/"+PayloadImportPath] = map[string]reflect.Value{
		"Payload": reflect.ValueOf((*scripting.Payload)(nil)),
	}
	return out
}
