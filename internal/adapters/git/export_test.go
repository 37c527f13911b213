package git

import "github.com/go-git/go-git/v5/plumbing/transport"

// AuthWith returns the auth method the cloner builds from the given environment.
func AuthWith(env map[string]string) transport.AuthMethod {
	c := &Cloner{lookup: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
	return c.auth()
}
