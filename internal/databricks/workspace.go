package databricks

import (
	"context"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/compute"
	"github.com/databricks/databricks-sdk-go/service/iam"
	"github.com/databricks/databricks-sdk-go/service/jobs"
	"github.com/databricks/databricks-sdk-go/service/workspace"
	"golang.org/x/time/rate"

	"brickops/internal/adapters/config"
	"brickops/pkg/errors"
	"brickops/pkg/logger"
)

// Workspace implements Client on top of the official SDK, with a shared
// client-side rate limiter so a chatty model cannot hammer the admin API.
type Workspace struct {
	w       *databricks.WorkspaceClient
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewWorkspace builds an SDK-backed workspace client from configuration.
func NewWorkspace(cfg config.DatabricksConfig, log *logger.Logger) (*Workspace, error) {
	w, err := databricks.NewWorkspaceClient(&databricks.Config{
		Host:               cfg.Host,
		Token:              cfg.Token,
		HTTPTimeoutSeconds: int(cfg.Timeout.Seconds()),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create workspace client")
	}

	return &Workspace{
		w:       w,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst),
		log:     log.With("component", "databricks"),
	}, nil
}

// wait blocks until the rate limiter admits one more workspace call.
func (ws *Workspace) wait(ctx context.Context) error {
	if err := ws.limiter.Wait(ctx); err != nil {
		return errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
	}
	return nil
}

func (ws *Workspace) ListServicePrincipals(ctx context.Context, req iam.ListServicePrincipalsRequest) ([]iam.ServicePrincipal, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.ServicePrincipals.ListAll(ctx, req)
}

func (ws *Workspace) CreateServicePrincipal(ctx context.Context, sp iam.ServicePrincipal) (*iam.ServicePrincipal, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.ServicePrincipals.Create(ctx, sp)
}

func (ws *Workspace) GetServicePrincipal(ctx context.Context, id string) (*iam.ServicePrincipal, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.ServicePrincipals.Get(ctx, iam.GetServicePrincipalRequest{Id: id})
}

func (ws *Workspace) DeleteServicePrincipal(ctx context.Context, id string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.ServicePrincipals.Delete(ctx, iam.DeleteServicePrincipalRequest{Id: id})
}

func (ws *Workspace) ListSecretScopes(ctx context.Context) ([]workspace.SecretScope, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Secrets.ListScopesAll(ctx)
}

func (ws *Workspace) CreateSecretScope(ctx context.Context, req workspace.CreateScope) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Secrets.CreateScope(ctx, req)
}

func (ws *Workspace) PutSecret(ctx context.Context, req workspace.PutSecret) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Secrets.PutSecret(ctx, req)
}

func (ws *Workspace) DeleteSecret(ctx context.Context, scope, key string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Secrets.DeleteSecret(ctx, workspace.DeleteSecret{Scope: scope, Key: key})
}

func (ws *Workspace) DeleteSecretScope(ctx context.Context, scope string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Secrets.DeleteScope(ctx, workspace.DeleteScope{Scope: scope})
}

func (ws *Workspace) GetSecret(ctx context.Context, scope, key string) (*workspace.GetSecretResponse, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Secrets.GetSecret(ctx, workspace.GetSecretRequest{Scope: scope, Key: key})
}

func (ws *Workspace) PutSecretACL(ctx context.Context, scope, principal string, permission workspace.AclPermission) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Secrets.PutAcl(ctx, workspace.PutAcl{
		Scope:      scope,
		Principal:  principal,
		Permission: permission,
	})
}

func (ws *Workspace) ListSecretACLs(ctx context.Context, scope string) ([]workspace.AclItem, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Secrets.ListAclsAll(ctx, workspace.ListAclsRequest{Scope: scope})
}

func (ws *Workspace) DeleteSecretACL(ctx context.Context, scope, principal string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Secrets.DeleteAcl(ctx, workspace.DeleteAcl{Scope: scope, Principal: principal})
}

func (ws *Workspace) ListClusters(ctx context.Context) ([]compute.ClusterDetails, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Clusters.ListAll(ctx, compute.ListClustersRequest{})
}

func (ws *Workspace) TerminateCluster(ctx context.Context, clusterID string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	// Delete terminates the cluster; it stays listed and can be started again.
	_, err := ws.w.Clusters.Delete(ctx, compute.DeleteCluster{ClusterId: clusterID})
	return err
}

func (ws *Workspace) StartCluster(ctx context.Context, clusterID string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	_, err := ws.w.Clusters.Start(ctx, compute.StartCluster{ClusterId: clusterID})
	return err
}

func (ws *Workspace) GetCluster(ctx context.Context, clusterID string) (*compute.ClusterDetails, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Clusters.Get(ctx, compute.GetClusterRequest{ClusterId: clusterID})
}

func (ws *Workspace) RestartCluster(ctx context.Context, clusterID string) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	_, err := ws.w.Clusters.Restart(ctx, compute.RestartCluster{ClusterId: clusterID})
	return err
}

func (ws *Workspace) RunJobNow(ctx context.Context, jobID int64, params map[string]string) (*jobs.RunNowResponse, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	waiter, err := ws.w.Jobs.RunNow(ctx, jobs.RunNow{
		JobId:         jobID,
		JobParameters: params,
	})
	if err != nil {
		return nil, err
	}
	// Fire and forget; the agent reports the run id, it does not babysit the run.
	return waiter.Response, nil
}

func (ws *Workspace) ListJobs(ctx context.Context, req jobs.ListJobsRequest) ([]jobs.BaseJob, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Jobs.ListAll(ctx, req)
}

func (ws *Workspace) CancelJobRuns(ctx context.Context, jobID int64) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	return ws.w.Jobs.CancelAllRuns(ctx, jobs.CancelAllRuns{JobId: jobID})
}

func (ws *Workspace) GetJob(ctx context.Context, jobID int64, pageToken string) (*jobs.Job, error) {
	if err := ws.wait(ctx); err != nil {
		return nil, err
	}
	return ws.w.Jobs.Get(ctx, jobs.GetJobRequest{JobId: jobID, PageToken: pageToken})
}

func (ws *Workspace) Ping(ctx context.Context) error {
	if err := ws.wait(ctx); err != nil {
		return err
	}
	if _, err := ws.w.CurrentUser.Me(ctx); err != nil {
		return errors.Wrap(errors.ErrWorkspaceUnavailable, err.Error())
	}
	return nil
}
