// Package confloader layers configuration sources into a koanf tree and decodes the
// result into a struct with koanf tags.
//
// Precedence, lowest first: defaults already present in the target, a map (LoadMap),
// a YAML file, then environment variables.
//
// Environment keys drop the prefix, lowercase, and use "__" as the section separator,
// so GOCRED_TOKEN__EXPIRES_IN maps to token.expires_in.
package confloader
