package main

import (
	"github.com/JaimeStill/agent-scaffold/internal/routes"
	"github.com/JaimeStill/agent-scaffold/pkg/openapi"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func generateSpec(rs routes.System, components *openapi.Components) *openapi.Spec {
	spec := &openapi.Spec{
		OpenAPI: "3.1.0",
		Info: &openapi.Info{
			Title:       "Agent Scaffold API",
			Version:     version,
			Description: "Registers agent configurations and materializes their scaffold directories.",
		},
		Components: components,
		Paths:      make(map[string]*openapi.PathItem),
	}

	for _, group := range rs.Groups() {
		processGroup(spec, "", group)
	}

	for _, route := range rs.Routes() {
		if route.OpenAPI == nil {
			continue
		}

		addOperation(spec, route.Pattern, route.Method, route.OpenAPI)
	}

	return spec
}

func processGroup(spec *openapi.Spec, parentPrefix string, group routes.Group) {
	prefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = group.Tags
		}

		addOperation(spec, prefix+route.Pattern, route.Method, op)
	}

	for _, child := range group.Children {
		processGroup(spec, prefix, child)
	}
}

func addOperation(spec *openapi.Spec, path, method string, op *openapi.Operation) {
	if spec.Paths[path] == nil {
		spec.Paths[path] = &openapi.PathItem{}
	}

	switch method {
	case "GET":
		spec.Paths[path].Get = op
	case "POST":
		spec.Paths[path].Post = op
	case "PUT":
		spec.Paths[path].Put = op
	case "DELETE":
		spec.Paths[path].Delete = op
	}
}
