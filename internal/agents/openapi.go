package agents

import "github.com/JaimeStill/agent-scaffold/pkg/openapi"

type operations struct {
	Create *openapi.Operation
	List   *openapi.Operation
	Get    *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

// Operations contains OpenAPI operation definitions for all agent endpoints.
var Operations = operations{
	Create: &openapi.Operation{
		Summary:     "Create agent",
		Description: "Registers an agent and writes its scaffold directory",
		RequestBody: openapi.RequestBodyJSON("AgentSpec", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Agent created", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List agents",
		Description: "Returns every registered agent",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Registered agents", "Agent"),
		},
	},
	Get: &openapi.Operation{
		Summary: "Get agent by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update agent",
		Description: "Replaces the agent record and re-materializes its environment file and manifest. The script is never rewritten.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("AgentSpec", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent updated", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("Internal"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete agent",
		Description: "Removes the agent and its scaffold directory",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent deleted", "DeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			500: openapi.ResponseRef("Internal"),
		},
	},
}

// Schemas returns the component schemas referenced by Operations.
func (operations) Schemas() map[string]*openapi.Schema {
	spec := map[string]*openapi.Schema{
		"name": {Type: "string", Description: "Agent name", Example: "bot1"},
		"imports": {
			Type:        "array",
			Description: "pip packages listed in environment.yml",
			Items:       &openapi.Schema{Type: "string"},
		},
		"env_vars": {
			Type:                 "object",
			Description:          "Variables written to .env",
			AdditionalProperties: &openapi.Schema{Type: "string"},
		},
	}

	agent := map[string]*openapi.Schema{
		"id": {Type: "string", Format: "uuid"},
	}
	for k, v := range spec {
		agent[k] = v
	}

	return map[string]*openapi.Schema{
		"AgentSpec": {
			Type:       "object",
			Properties: spec,
			Required:   []string{"name"},
		},
		"Agent": {
			Type:       "object",
			Properties: agent,
			Required:   []string{"id", "name", "imports", "env_vars"},
		},
		"DeleteResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"detail": {Type: "string", Example: "Agent deleted"},
			},
		},
	}
}
