package api

import (
	"fmt"
	"net/http"

	"github.com/nlongcn/ownyou-consumer-application-sub001/internal/config"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/openapi"
)

// buildSpec generates the OpenAPI document for the profiling API.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	addSchemas(spec)
	addInputPaths(spec)
	addRunPaths(spec)
	addProfilePaths(spec)
	addTaxonomyPaths(spec)
	addPromptPaths(spec)

	return spec
}

func addSchemas(spec *openapi.Spec) {
	spec.Components.Schemas["Input"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string", Format: "uuid"},
			"namespace":     {Type: "string", Description: "Profile owner identifier"},
			"source":        {Type: "string", Description: "Where the message batch came from", Example: "gmail"},
			"filename":      {Type: "string"},
			"message_count": {Type: "integer"},
			"status":        {Type: "string", Enum: []any{"pending", "processed", "failed"}},
			"received_at":   {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["Run"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":              {Type: "string", Format: "uuid"},
			"namespace":       {Type: "string"},
			"status":          {Type: "string", Enum: []any{"running", "completed", "failed", "no_op"}},
			"processed_count": {Type: "integer"},
			"created_count":   {Type: "integer"},
			"updated_count":   {Type: "integer"},
			"warning_count":   {Type: "integer"},
			"warnings":        {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"started_at":      {Type: "string", Format: "date-time"},
			"completed_at":    {Type: "string", Format: "date-time"},
		},
	}

	spec.Components.Schemas["StartRun"] = &openapi.Schema{
		Type:     "object",
		Required: []string{"namespace"},
		Properties: map[string]*openapi.Schema{
			"namespace":       {Type: "string", Description: "Profile owner to run against"},
			"batch_size":      {Type: "integer", Description: "Cap on fresh inputs consumed; zero means no cap"},
			"force_reprocess": {Type: "boolean", Description: "Ignore the consumption tracker and rerun pending inputs"},
		},
	}

	spec.Components.Schemas["ProfileRecord"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":                    {Type: "string", Example: "semantic_interests_186_hiking"},
			"namespace":              {Type: "string"},
			"section":                {Type: "string", Enum: []any{"demographics", "household", "interests", "purchase_intent"}},
			"taxonomy_id":            {Type: "string"},
			"value":                  {Type: "string"},
			"category_path":          {Type: "string", Example: "Interest | Outdoor Activities | Hiking"},
			"tiers":                  {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"grouping_key":           {Type: "string"},
			"grouping_value":         {Type: "string"},
			"data_source":            {Type: "string", Example: "gmail"},
			"purchase_intent_flag":   {Type: "string"},
			"confidence":             {Type: "number", Description: "Decay-adjusted confidence in [0, 1]"},
			"supporting_evidence":    {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"contradicting_evidence": {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"evidence_count":         {Type: "integer"},
			"source_ids":             {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"needs_review":           {Type: "boolean"},
			"first_observed":         {Type: "string", Format: "date-time"},
			"last_validated":         {Type: "string", Format: "date-time"},
			"days_since_validation":  {Type: "integer"},
		},
	}

	spec.Components.Schemas["TaxonomyEntry"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                {Type: "string"},
			"section":           {Type: "string"},
			"tier_1":            {Type: "string"},
			"tier_2":            {Type: "string"},
			"tier_3":            {Type: "string"},
			"tier_4":            {Type: "string"},
			"tier_5":            {Type: "string"},
			"grouping_tier_key": {Type: "string"},
			"grouping_value":    {Type: "string"},
		},
	}

	spec.Components.Schemas["Prompt"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":           {Type: "string", Format: "uuid"},
			"name":         {Type: "string"},
			"stage":        {Type: "string"},
			"instructions": {Type: "string"},
			"description":  {Type: "string"},
			"active":       {Type: "boolean"},
		},
	}
}

func addInputPaths(spec *openapi.Spec) {
	spec.Paths["/inputs"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List message batch inputs",
			Tags:    []string{"inputs"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("namespace", "string", "Filter by profile owner", false),
				openapi.QueryParam("status", "string", "Filter by processing status", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated inputs", "Input"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Upload a message batch",
			Description: "Multipart form upload with a JSON message array or CSV export and namespace/source fields. CSV rows are converted to the JSON message form before archival.",
			Tags:        []string{"inputs"},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Registered input", "Input"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/inputs/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get an input",
			Tags:       []string{"inputs"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Input ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Input", "Input"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete an input",
			Tags:       []string{"inputs"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Input ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addRunPaths(spec *openapi.Spec) {
	spec.Paths["/runs"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List profiling runs",
			Tags:    []string{"runs"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated runs", "Run"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Start a profiling run",
			Description: "Consumes the namespace's unprocessed inputs. Completes as no_op when nothing new has arrived.",
			Tags:        []string{"runs"},
			RequestBody: openapi.RequestBodyJSON("StartRun", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Completed run", "Run"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/runs/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a run",
			Tags:       []string{"runs"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Run ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Run", "Run"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addProfilePaths(spec *openapi.Spec) {
	namespaceParam := &openapi.Parameter{
		Name:        "namespace",
		In:          "path",
		Required:    true,
		Description: "Profile owner identifier",
		Schema:      &openapi.Schema{Type: "string"},
	}

	keyParam := &openapi.Parameter{
		Name:        "key",
		In:          "path",
		Required:    true,
		Description: "Profile record key",
		Schema:      &openapi.Schema{Type: "string"},
	}

	spec.Paths["/profiles/{namespace}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List a namespace's profile records",
			Tags:    []string{"profiles"},
			Parameters: []*openapi.Parameter{
				namespaceParam,
				openapi.QueryParam("section", "string", "Filter by profile section", false),
				openapi.QueryParam("min_confidence", "number", "Minimum decay-adjusted confidence", false),
				openapi.QueryParam("stale_days", "integer", "Only records not validated in this many days", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Profile records", "ProfileRecord"),
			},
		},
	}

	spec.Paths["/profiles/{namespace}/summary"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Summarize a profile",
			Tags:       []string{"profiles"},
			Parameters: []*openapi.Parameter{namespaceParam},
			Responses: map[int]*openapi.Response{
				200: {Description: "Per-section record counts and average confidence"},
			},
		},
	}

	spec.Paths["/profiles/{namespace}/records/{key}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a profile record",
			Tags:       []string{"profiles"},
			Parameters: []*openapi.Parameter{namespaceParam, keyParam},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Profile record", "ProfileRecord"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a profile record",
			Tags:       []string{"profiles"},
			Parameters: []*openapi.Parameter{namespaceParam, keyParam},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}
}

func addTaxonomyPaths(spec *openapi.Spec) {
	spec.Paths["/taxonomy"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List taxonomy entries",
			Tags:    []string{"taxonomy"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("section", "string", "Filter by profile section", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated taxonomy entries", "TaxonomyEntry"),
			},
		},
	}

	spec.Paths["/taxonomy/import"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Import taxonomy entries",
			Description: "CSV upload with columns id, section, parent_id, tier_1 through tier_5.",
			Tags:        []string{"taxonomy"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Import summary"},
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func addPromptPaths(spec *openapi.Spec) {
	spec.Paths["/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List prompt overrides",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated prompts", "Prompt"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a prompt override",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created prompt", "Prompt"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}
}

func specHandler(cfg *config.Config) (http.HandlerFunc, error) {
	data, err := openapi.MarshalJSON(buildSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("serialize openapi spec: %w", err)
	}
	return openapi.ServeSpec(data), nil
}
