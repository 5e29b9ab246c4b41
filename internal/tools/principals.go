package tools

import (
	"context"

	"github.com/databricks/databricks-sdk-go/service/iam"
)

// Service principal tools (SCIM API).

// NewListServicePrincipalTool lists service principals with optional SCIM
// filtering, sorting and pagination.
func NewListServicePrincipalTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"filter":             prop("string", `SCIM filter expression (e.g., 'displayName co "sp"').`),
		"count":              prop("integer", "Desired number of results per page (max 100)."),
		"sortBy":             prop("string", "Attribute to sort results by."),
		"sortOrder":          prop("string", "The order to sort ('ascending' or 'descending')."),
		"startIndex":         prop("integer", "Index of the first result (1-based)."),
		"attributes":         prop("string", "Comma-separated list of attributes to include in the response."),
		"excludedAttributes": prop("string", "Comma-separated list of attributes to exclude."),
	})

	return New("list_service_principal",
		"Lists all the service principal/SP via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Filter             string `json:"filter"`
				Count              int64  `json:"count"`
				SortBy             string `json:"sortBy"`
				SortOrder          string `json:"sortOrder"`
				StartIndex         int64  `json:"startIndex"`
				Attributes         string `json:"attributes"`
				ExcludedAttributes string `json:"excludedAttributes"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("list_service_principal", err)
			}

			deps.Log.Debug("Tool: list_service_principal called", "filter", in.Filter)

			sps, err := deps.Client.ListServicePrincipals(ctx, iam.ListServicePrincipalsRequest{
				Filter:             in.Filter,
				Count:              in.Count,
				SortBy:             in.SortBy,
				SortOrder:          iam.ListSortOrder(in.SortOrder),
				StartIndex:         in.StartIndex,
				Attributes:         in.Attributes,
				ExcludedAttributes: in.ExcludedAttributes,
			})
			if err != nil {
				deps.Log.Error("Tool: list_service_principal failed", "error", err)
				return errorResult("list_service_principal", err)
			}

			return marshalResult("list_service_principal", sps)
		})
}

// NewCreateServicePrincipalTool registers a new service principal.
func NewCreateServicePrincipalTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"display_name":   prop("string", "The user-friendly name for the Service Principal (required)."),
		"active":         prop("boolean", "Whether the SP should be active (defaults to true)."),
		"application_id": prop("string", "Optional UUID/Client ID if the SP represents an existing external identity (like an Azure AD SP)."),
	}, "display_name")

	return New("create_service_principal",
		"Create a service principal/SP via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				DisplayName   string `json:"display_name"`
				Active        *bool  `json:"active"`
				ApplicationID string `json:"application_id"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("create_service_principal", err)
			}

			active := true
			if in.Active != nil {
				active = *in.Active
			}

			deps.Log.Debug("Tool: create_service_principal called", "display_name", in.DisplayName)

			sp, err := deps.Client.CreateServicePrincipal(ctx, iam.ServicePrincipal{
				DisplayName:   in.DisplayName,
				Active:        active,
				ApplicationId: in.ApplicationID,
			})
			if err != nil {
				deps.Log.Error("Tool: create_service_principal failed", "error", err)
				return errorResult("create_service_principal", err)
			}

			return marshalResult("create_service_principal", sp)
		})
}

// NewGetServicePrincipalDetailsTool fetches one service principal by id.
func NewGetServicePrincipalDetailsTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"id": prop("string", "The ID of the SP to get."),
	}, "id")

	return New("get_service_principal_details",
		"Gets a service principal/SP via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				ID stringID `json:"id"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("get_service_principal_details", err)
			}

			sp, err := deps.Client.GetServicePrincipal(ctx, string(in.ID))
			if err != nil {
				deps.Log.Error("Tool: get_service_principal_details failed", "id", in.ID, "error", err)
				return errorResult("get_service_principal_details", err)
			}

			return marshalResult("get_service_principal_details", sp)
		})
}

// NewDeleteServicePrincipalTool removes a service principal by id.
func NewDeleteServicePrincipalTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"id": prop("string", "The ID of the SP to delete."),
	}, "id")

	return New("delete_service_principal",
		"Deletes a service principal/SP via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				ID stringID `json:"id"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("delete_service_principal", err)
			}

			if err := deps.Client.DeleteServicePrincipal(ctx, string(in.ID)); err != nil {
				deps.Log.Error("Tool: delete_service_principal failed", "id", in.ID, "error", err)
				return errorResult("delete_service_principal", err)
			}

			deps.Log.Info("Tool: delete_service_principal success", "id", in.ID)
			return successMessage("Service Principal with ID %s deleted successfully.", in.ID)
		})
}
