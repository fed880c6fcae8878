// Package project locates the compose project root that lifecycle commands
// run in.
//
// The root is either given explicitly (flag, environment, config file) or
// discovered by walking up from the current directory until a compose file,
// or a devcontainer.json that references one, is found. Discovery happens
// once per CLI invocation; the result is handed to the compose package.
//
// Compose files are parsed with gopkg.in/yaml.v3 and devcontainer.json with
// github.com/tidwall/jsonc, but only the few fields needed to describe the
// project (name, services, compose file locations) are read.
package project
