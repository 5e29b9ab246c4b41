package tools

// RegisterAll registers the full administrative tool set in the registry.
func RegisterAll(registry *Registry, deps Deps) {
	log := deps.Log.With("component", "tool_registration")

	// Service principal tools
	registry.Register(NewListServicePrincipalTool(deps))
	registry.Register(NewCreateServicePrincipalTool(deps))
	registry.Register(NewGetServicePrincipalDetailsTool(deps))
	registry.Register(NewDeleteServicePrincipalTool(deps))
	log.Debug("Registered service principal tools")

	// Secret scope, secret and ACL tools
	registry.Register(NewListOfScopesTool(deps))
	registry.Register(NewCreateScopeTool(deps))
	registry.Register(NewAddSecretTool(deps))
	registry.Register(NewDeleteSecretTool(deps))
	registry.Register(NewDeleteScopeTool(deps))
	registry.Register(NewGetSecretTool(deps))
	registry.Register(NewCreateACLScopesTool(deps))
	registry.Register(NewListACLScopesTool(deps))
	registry.Register(NewDeleteACLScopesTool(deps))
	log.Debug("Registered secret tools")

	// Cluster tools
	registry.Register(NewListClustersTool(deps))
	registry.Register(NewTerminateClustersTool(deps))
	registry.Register(NewStartClusterTool(deps))
	registry.Register(NewGetClusterInfoTool(deps))
	registry.Register(NewRestartClusterTool(deps))
	log.Debug("Registered cluster tools")

	// Job tools
	registry.Register(NewStartJobTool(deps))
	registry.Register(NewListJobsTool(deps))
	registry.Register(NewCancelJobTool(deps))
	registry.Register(NewGetJobDetailsTool(deps))
	log.Debug("Registered job tools")

	log.Infof("Registered %d workspace admin tools", len(registry.List()))
}
