package tools

import (
	"context"

	"github.com/databricks/databricks-sdk-go/service/compute"
	"github.com/databricks/databricks-sdk-go/service/iam"
	"github.com/databricks/databricks-sdk-go/service/jobs"
	"github.com/databricks/databricks-sdk-go/service/workspace"

	"brickops/pkg/logger"
)

// fakeClient implements databricks.Client with overridable behavior per
// method. Unset methods return zero values.
type fakeClient struct {
	listServicePrincipals  func(ctx context.Context, req iam.ListServicePrincipalsRequest) ([]iam.ServicePrincipal, error)
	createServicePrincipal func(ctx context.Context, sp iam.ServicePrincipal) (*iam.ServicePrincipal, error)
	getServicePrincipal    func(ctx context.Context, id string) (*iam.ServicePrincipal, error)
	deleteServicePrincipal func(ctx context.Context, id string) error

	listSecretScopes  func(ctx context.Context) ([]workspace.SecretScope, error)
	createSecretScope func(ctx context.Context, req workspace.CreateScope) error
	putSecret         func(ctx context.Context, req workspace.PutSecret) error
	deleteSecret      func(ctx context.Context, scope, key string) error
	deleteSecretScope func(ctx context.Context, scope string) error
	getSecret         func(ctx context.Context, scope, key string) (*workspace.GetSecretResponse, error)
	putSecretACL      func(ctx context.Context, scope, principal string, permission workspace.AclPermission) error
	listSecretACLs    func(ctx context.Context, scope string) ([]workspace.AclItem, error)
	deleteSecretACL   func(ctx context.Context, scope, principal string) error

	listClusters     func(ctx context.Context) ([]compute.ClusterDetails, error)
	terminateCluster func(ctx context.Context, clusterID string) error
	startCluster     func(ctx context.Context, clusterID string) error
	getCluster       func(ctx context.Context, clusterID string) (*compute.ClusterDetails, error)
	restartCluster   func(ctx context.Context, clusterID string) error

	runJobNow     func(ctx context.Context, jobID int64, params map[string]string) (*jobs.RunNowResponse, error)
	listJobs      func(ctx context.Context, req jobs.ListJobsRequest) ([]jobs.BaseJob, error)
	cancelJobRuns func(ctx context.Context, jobID int64) error
	getJob        func(ctx context.Context, jobID int64, pageToken string) (*jobs.Job, error)

	ping func(ctx context.Context) error
}

func (f *fakeClient) ListServicePrincipals(ctx context.Context, req iam.ListServicePrincipalsRequest) ([]iam.ServicePrincipal, error) {
	if f.listServicePrincipals != nil {
		return f.listServicePrincipals(ctx, req)
	}
	return nil, nil
}

func (f *fakeClient) CreateServicePrincipal(ctx context.Context, sp iam.ServicePrincipal) (*iam.ServicePrincipal, error) {
	if f.createServicePrincipal != nil {
		return f.createServicePrincipal(ctx, sp)
	}
	return &iam.ServicePrincipal{}, nil
}

func (f *fakeClient) GetServicePrincipal(ctx context.Context, id string) (*iam.ServicePrincipal, error) {
	if f.getServicePrincipal != nil {
		return f.getServicePrincipal(ctx, id)
	}
	return &iam.ServicePrincipal{}, nil
}

func (f *fakeClient) DeleteServicePrincipal(ctx context.Context, id string) error {
	if f.deleteServicePrincipal != nil {
		return f.deleteServicePrincipal(ctx, id)
	}
	return nil
}

func (f *fakeClient) ListSecretScopes(ctx context.Context) ([]workspace.SecretScope, error) {
	if f.listSecretScopes != nil {
		return f.listSecretScopes(ctx)
	}
	return nil, nil
}

func (f *fakeClient) CreateSecretScope(ctx context.Context, req workspace.CreateScope) error {
	if f.createSecretScope != nil {
		return f.createSecretScope(ctx, req)
	}
	return nil
}

func (f *fakeClient) PutSecret(ctx context.Context, req workspace.PutSecret) error {
	if f.putSecret != nil {
		return f.putSecret(ctx, req)
	}
	return nil
}

func (f *fakeClient) DeleteSecret(ctx context.Context, scope, key string) error {
	if f.deleteSecret != nil {
		return f.deleteSecret(ctx, scope, key)
	}
	return nil
}

func (f *fakeClient) DeleteSecretScope(ctx context.Context, scope string) error {
	if f.deleteSecretScope != nil {
		return f.deleteSecretScope(ctx, scope)
	}
	return nil
}

func (f *fakeClient) GetSecret(ctx context.Context, scope, key string) (*workspace.GetSecretResponse, error) {
	if f.getSecret != nil {
		return f.getSecret(ctx, scope, key)
	}
	return &workspace.GetSecretResponse{}, nil
}

func (f *fakeClient) PutSecretACL(ctx context.Context, scope, principal string, permission workspace.AclPermission) error {
	if f.putSecretACL != nil {
		return f.putSecretACL(ctx, scope, principal, permission)
	}
	return nil
}

func (f *fakeClient) ListSecretACLs(ctx context.Context, scope string) ([]workspace.AclItem, error) {
	if f.listSecretACLs != nil {
		return f.listSecretACLs(ctx, scope)
	}
	return nil, nil
}

func (f *fakeClient) DeleteSecretACL(ctx context.Context, scope, principal string) error {
	if f.deleteSecretACL != nil {
		return f.deleteSecretACL(ctx, scope, principal)
	}
	return nil
}

func (f *fakeClient) ListClusters(ctx context.Context) ([]compute.ClusterDetails, error) {
	if f.listClusters != nil {
		return f.listClusters(ctx)
	}
	return nil, nil
}

func (f *fakeClient) TerminateCluster(ctx context.Context, clusterID string) error {
	if f.terminateCluster != nil {
		return f.terminateCluster(ctx, clusterID)
	}
	return nil
}

func (f *fakeClient) StartCluster(ctx context.Context, clusterID string) error {
	if f.startCluster != nil {
		return f.startCluster(ctx, clusterID)
	}
	return nil
}

func (f *fakeClient) GetCluster(ctx context.Context, clusterID string) (*compute.ClusterDetails, error) {
	if f.getCluster != nil {
		return f.getCluster(ctx, clusterID)
	}
	return &compute.ClusterDetails{}, nil
}

func (f *fakeClient) RestartCluster(ctx context.Context, clusterID string) error {
	if f.restartCluster != nil {
		return f.restartCluster(ctx, clusterID)
	}
	return nil
}

func (f *fakeClient) RunJobNow(ctx context.Context, jobID int64, params map[string]string) (*jobs.RunNowResponse, error) {
	if f.runJobNow != nil {
		return f.runJobNow(ctx, jobID, params)
	}
	return &jobs.RunNowResponse{}, nil
}

func (f *fakeClient) ListJobs(ctx context.Context, req jobs.ListJobsRequest) ([]jobs.BaseJob, error) {
	if f.listJobs != nil {
		return f.listJobs(ctx, req)
	}
	return nil, nil
}

func (f *fakeClient) CancelJobRuns(ctx context.Context, jobID int64) error {
	if f.cancelJobRuns != nil {
		return f.cancelJobRuns(ctx, jobID)
	}
	return nil
}

func (f *fakeClient) GetJob(ctx context.Context, jobID int64, pageToken string) (*jobs.Job, error) {
	if f.getJob != nil {
		return f.getJob(ctx, jobID, pageToken)
	}
	return &jobs.Job{}, nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	if f.ping != nil {
		return f.ping(ctx)
	}
	return nil
}

func testDeps(client *fakeClient) Deps {
	return Deps{Client: client, Log: logger.Get()}
}
