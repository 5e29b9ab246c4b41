package tools

import (
	"context"
)

// Cluster lifecycle tools.

// NewListClustersTool lists all clusters visible to the caller.
func NewListClustersTool(deps Deps) Tool {
	return New("list_clusters",
		"Gets the list of clusters via the Databricks REST API.",
		objectSchema(map[string]any{}),
		func(ctx context.Context, args string) string {
			clusters, err := deps.Client.ListClusters(ctx)
			if err != nil {
				deps.Log.Error("Tool: list_clusters failed", "error", err)
				return errorResult("list_clusters", err)
			}
			return marshalResult("list_clusters", clusters)
		})
}

type clusterArgs struct {
	ClusterID stringID `json:"cluster_id"`
}

var clusterParams = objectSchema(map[string]any{
	"cluster_id": prop("string", "The cluster to operate on (required)."),
}, "cluster_id")

// NewTerminateClustersTool terminates a running cluster.
func NewTerminateClustersTool(deps Deps) Tool {
	return New("terminate_clusters",
		"Terminates a cluster via the Databricks REST API. The 'cluster_id' parameter is required.",
		clusterParams,
		func(ctx context.Context, args string) string {
			var in clusterArgs
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("terminate_clusters", err)
			}

			if err := deps.Client.TerminateCluster(ctx, string(in.ClusterID)); err != nil {
				deps.Log.Error("Tool: terminate_clusters failed", "cluster_id", in.ClusterID, "error", err)
				return errorResult("terminate_clusters", err)
			}

			deps.Log.Info("Tool: terminate_clusters success", "cluster_id", in.ClusterID)
			return successMessage("Cluster %s terminated successfully.", in.ClusterID)
		})
}

// NewStartClusterTool starts a terminated cluster.
func NewStartClusterTool(deps Deps) Tool {
	return New("start_cluster",
		"Starts a cluster via the Databricks REST API. The 'cluster_id' parameter is required.",
		clusterParams,
		func(ctx context.Context, args string) string {
			var in clusterArgs
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("start_cluster", err)
			}

			if err := deps.Client.StartCluster(ctx, string(in.ClusterID)); err != nil {
				deps.Log.Error("Tool: start_cluster failed", "cluster_id", in.ClusterID, "error", err)
				return errorResult("start_cluster", err)
			}

			deps.Log.Info("Tool: start_cluster success", "cluster_id", in.ClusterID)
			return successMessage("Cluster %s started successfully.", in.ClusterID)
		})
}

// NewGetClusterInfoTool fetches full details for one cluster.
func NewGetClusterInfoTool(deps Deps) Tool {
	return New("get_cluster_info",
		"Gets the cluster information via the Databricks REST API. The 'cluster_id' parameter is required.",
		clusterParams,
		func(ctx context.Context, args string) string {
			var in clusterArgs
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("get_cluster_info", err)
			}

			cluster, err := deps.Client.GetCluster(ctx, string(in.ClusterID))
			if err != nil {
				deps.Log.Error("Tool: get_cluster_info failed", "cluster_id", in.ClusterID, "error", err)
				return errorResult("get_cluster_info", err)
			}

			return marshalResult("get_cluster_info", cluster)
		})
}

// NewRestartClusterTool restarts a running cluster.
func NewRestartClusterTool(deps Deps) Tool {
	return New("restart_cluster",
		"Restarts a cluster via the Databricks REST API. The 'cluster_id' parameter is required.",
		clusterParams,
		func(ctx context.Context, args string) string {
			var in clusterArgs
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("restart_cluster", err)
			}

			if err := deps.Client.RestartCluster(ctx, string(in.ClusterID)); err != nil {
				deps.Log.Error("Tool: restart_cluster failed", "cluster_id", in.ClusterID, "error", err)
				return errorResult("restart_cluster", err)
			}

			deps.Log.Info("Tool: restart_cluster success", "cluster_id", in.ClusterID)
			return successMessage("Cluster %s restarted successfully.", in.ClusterID)
		})
}
