package tools

import (
	"context"

	"github.com/databricks/databricks-sdk-go/service/workspace"
)

// Secret scope, secret and ACL tools.

// NewListOfScopesTool lists all secret scopes in the workspace.
func NewListOfScopesTool(deps Deps) Tool {
	return New("list_of_scopes",
		"Gets the list of secret scopes via the Databricks REST API.",
		objectSchema(map[string]any{}),
		func(ctx context.Context, args string) string {
			scopes, err := deps.Client.ListSecretScopes(ctx)
			if err != nil {
				deps.Log.Error("Tool: list_of_scopes failed", "error", err)
				return errorResult("list_of_scopes", err)
			}
			return marshalResult("list_of_scopes", scopes)
		})
}

// NewCreateScopeTool creates a new secret scope.
func NewCreateScopeTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope":                    prop("string", "The name of the secret scope to create."),
		"scope_backend_type":       prop("string", `The type of secret scope. Can be "DATABRICKS" or "AZURE_KEYVAULT". Defaults to "DATABRICKS".`),
		"initial_manage_principal": prop("string", "The principal that is initially granted MANAGE permission."),
	}, "scope")

	return New("create_scope",
		"Creates a new scope via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope                  string `json:"scope"`
				ScopeBackendType       string `json:"scope_backend_type"`
				InitialManagePrincipal string `json:"initial_manage_principal"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("create_scope", err)
			}

			backend := in.ScopeBackendType
			if backend == "" {
				backend = string(workspace.ScopeBackendTypeDatabricks)
			}

			err := deps.Client.CreateSecretScope(ctx, workspace.CreateScope{
				Scope:                  in.Scope,
				ScopeBackendType:       workspace.ScopeBackendType(backend),
				InitialManagePrincipal: in.InitialManagePrincipal,
			})
			if err != nil {
				deps.Log.Error("Tool: create_scope failed", "scope", in.Scope, "error", err)
				return errorResult("create_scope", err)
			}

			deps.Log.Info("Tool: create_scope success", "scope", in.Scope)
			return successMessage("Scope %s created successfully.", in.Scope)
		})
}

// NewAddSecretTool inserts or overwrites a secret under a scope.
func NewAddSecretTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope":        prop("string", "The name of the scope."),
		"key":          prop("string", "The name of the secret to create."),
		"string_value": prop("string", "If specified, the value will be stored in UTF-8 (MB4) form."),
		"bytes_value":  prop("string", "If specified, value will be stored as bytes."),
	}, "scope", "key")

	return New("add_secret",
		"Inserts a secret under the provided scope with the given name. If a secret already exists with the same name, this command overwrites the existing secret's value via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope       string `json:"scope"`
				Key         string `json:"key"`
				StringValue string `json:"string_value"`
				BytesValue  string `json:"bytes_value"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("add_secret", err)
			}

			err := deps.Client.PutSecret(ctx, workspace.PutSecret{
				Scope:       in.Scope,
				Key:         in.Key,
				StringValue: in.StringValue,
				BytesValue:  in.BytesValue,
			})
			if err != nil {
				deps.Log.Error("Tool: add_secret failed", "scope", in.Scope, "key", in.Key, "error", err)
				return errorResult("add_secret", err)
			}

			deps.Log.Info("Tool: add_secret success", "scope", in.Scope, "key", in.Key)
			return successMessage("Secret with key %s stored successfully.", in.Key)
		})
}

// NewDeleteSecretTool deletes a secret under a scope.
func NewDeleteSecretTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope": prop("string", "The name of the scope."),
		"key":   prop("string", "The name of the secret to delete."),
	}, "scope", "key")

	return New("delete_secret",
		"Deletes a secret under the provided scope with the given name via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope string `json:"scope"`
				Key   string `json:"key"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("delete_secret", err)
			}

			if err := deps.Client.DeleteSecret(ctx, in.Scope, in.Key); err != nil {
				deps.Log.Error("Tool: delete_secret failed", "scope", in.Scope, "key", in.Key, "error", err)
				return errorResult("delete_secret", err)
			}

			return successMessage("Secret with key %s deleted successfully.", in.Key)
		})
}

// NewDeleteScopeTool deletes a whole secret scope.
func NewDeleteScopeTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope": prop("string", "The name of the secret scope to delete."),
	}, "scope")

	return New("delete_scope",
		"Deletes a scope via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope string `json:"scope"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("delete_scope", err)
			}

			if err := deps.Client.DeleteSecretScope(ctx, in.Scope); err != nil {
				deps.Log.Error("Tool: delete_scope failed", "scope", in.Scope, "error", err)
				return errorResult("delete_scope", err)
			}

			return successMessage("Scope %s deleted successfully.", in.Scope)
		})
}

// NewGetSecretTool reads a secret value. Requires READ permission on the
// scope; the value comes back base64-encoded from the API.
func NewGetSecretTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope": prop("string", "The name of the scope."),
		"key":   prop("string", "The name of the secret."),
	}, "scope", "key")

	return New("get_secret",
		"Gets the secret under the provided scope with the given name via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope string `json:"scope"`
				Key   string `json:"key"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("get_secret", err)
			}

			secret, err := deps.Client.GetSecret(ctx, in.Scope, in.Key)
			if err != nil {
				deps.Log.Error("Tool: get_secret failed", "scope", in.Scope, "key", in.Key, "error", err)
				return errorResult("get_secret", err)
			}

			return marshalResult("get_secret", map[string]string{
				"key":   secret.Key,
				"value": secret.Value,
			})
		})
}

// NewCreateACLScopesTool grants or updates a principal's permission on a scope.
func NewCreateACLScopesTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope":      prop("string", "The name of the scope."),
		"permission": prop("string", "The permission to grant: READ, WRITE or MANAGE."),
		"principal":  prop("string", "The principal to grant the permission to."),
	}, "scope", "permission", "principal")

	return New("create_acl_scopes",
		"Creates or updates permission to the service principal to scopes via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope      string `json:"scope"`
				Permission string `json:"permission"`
				Principal  string `json:"principal"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("create_acl_scopes", err)
			}

			err := deps.Client.PutSecretACL(ctx, in.Scope, in.Principal, workspace.AclPermission(in.Permission))
			if err != nil {
				deps.Log.Error("Tool: create_acl_scopes failed", "scope", in.Scope, "principal", in.Principal, "error", err)
				return errorResult("create_acl_scopes", err)
			}

			deps.Log.Info("Tool: create_acl_scopes success", "scope", in.Scope, "principal", in.Principal, "permission", in.Permission)
			return successMessage("Gave %s permission to %s on %s.", in.Permission, in.Principal, in.Scope)
		})
}

// NewListACLScopesTool lists the ACLs set on a scope.
func NewListACLScopesTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope": prop("string", "The name of the scope."),
	}, "scope")

	return New("list_acl_scopes",
		"Lists the ACLs set on the given scope via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope string `json:"scope"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("list_acl_scopes", err)
			}

			acls, err := deps.Client.ListSecretACLs(ctx, in.Scope)
			if err != nil {
				deps.Log.Error("Tool: list_acl_scopes failed", "scope", in.Scope, "error", err)
				return errorResult("list_acl_scopes", err)
			}

			return marshalResult("list_acl_scopes", acls)
		})
}

// NewDeleteACLScopesTool revokes a principal's permission on a scope.
func NewDeleteACLScopesTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"scope":     prop("string", "The name of the scope."),
		"principal": prop("string", "The principal whose permission is revoked."),
	}, "scope", "principal")

	return New("delete_acl_scopes",
		"Deletes the existing permission to the service principal to scopes via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Scope     string `json:"scope"`
				Principal string `json:"principal"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("delete_acl_scopes", err)
			}

			if err := deps.Client.DeleteSecretACL(ctx, in.Scope, in.Principal); err != nil {
				deps.Log.Error("Tool: delete_acl_scopes failed", "scope", in.Scope, "principal", in.Principal, "error", err)
				return errorResult("delete_acl_scopes", err)
			}

			return successMessage("Deleted permissions for %s on %s.", in.Principal, in.Scope)
		})
}
