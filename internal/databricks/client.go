package databricks

import (
	"context"

	"github.com/databricks/databricks-sdk-go/service/compute"
	"github.com/databricks/databricks-sdk-go/service/iam"
	"github.com/databricks/databricks-sdk-go/service/jobs"
	"github.com/databricks/databricks-sdk-go/service/workspace"
)

// Client is the narrow slice of the workspace administration API the tools
// call. Every method maps to exactly one REST operation; implementations do
// not retry or classify failures, that policy lives at the tool boundary.
type Client interface {
	// Service principals (SCIM)
	ListServicePrincipals(ctx context.Context, req iam.ListServicePrincipalsRequest) ([]iam.ServicePrincipal, error)
	CreateServicePrincipal(ctx context.Context, sp iam.ServicePrincipal) (*iam.ServicePrincipal, error)
	GetServicePrincipal(ctx context.Context, id string) (*iam.ServicePrincipal, error)
	DeleteServicePrincipal(ctx context.Context, id string) error

	// Secret scopes, secrets and ACLs
	ListSecretScopes(ctx context.Context) ([]workspace.SecretScope, error)
	CreateSecretScope(ctx context.Context, req workspace.CreateScope) error
	PutSecret(ctx context.Context, req workspace.PutSecret) error
	DeleteSecret(ctx context.Context, scope, key string) error
	DeleteSecretScope(ctx context.Context, scope string) error
	GetSecret(ctx context.Context, scope, key string) (*workspace.GetSecretResponse, error)
	PutSecretACL(ctx context.Context, scope, principal string, permission workspace.AclPermission) error
	ListSecretACLs(ctx context.Context, scope string) ([]workspace.AclItem, error)
	DeleteSecretACL(ctx context.Context, scope, principal string) error

	// Clusters
	ListClusters(ctx context.Context) ([]compute.ClusterDetails, error)
	TerminateCluster(ctx context.Context, clusterID string) error
	StartCluster(ctx context.Context, clusterID string) error
	GetCluster(ctx context.Context, clusterID string) (*compute.ClusterDetails, error)
	RestartCluster(ctx context.Context, clusterID string) error

	// Jobs
	RunJobNow(ctx context.Context, jobID int64, params map[string]string) (*jobs.RunNowResponse, error)
	ListJobs(ctx context.Context, req jobs.ListJobsRequest) ([]jobs.BaseJob, error)
	CancelJobRuns(ctx context.Context, jobID int64) error
	GetJob(ctx context.Context, jobID int64, pageToken string) (*jobs.Job, error)

	// Ping verifies workspace connectivity (current user lookup)
	Ping(ctx context.Context) error
}
