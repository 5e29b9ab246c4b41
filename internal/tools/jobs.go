package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/databricks/databricks-sdk-go/service/jobs"
)

// Job tools.

// NewStartJobTool triggers a run of an existing job definition.
func NewStartJobTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"job_id":         prop("integer", "The job to trigger (required)."),
		"job_parameters": prop("string", "Job-level parameters as a JSON object string, e.g. '{\"env\": \"prod\"}'."),
	}, "job_id")

	return New("start_job",
		"Triggers a job run via the Databricks REST API. The 'job_id' parameter is required. The 'job_parameters' should be a JSON string if provided.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				JobID         int64  `json:"job_id"`
				JobParameters string `json:"job_parameters"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("start_job", err)
			}

			var jobParams map[string]string
			if in.JobParameters != "" {
				var raw map[string]any
				if err := json.Unmarshal([]byte(in.JobParameters), &raw); err != nil {
					return errorResult("start_job", err)
				}
				jobParams = make(map[string]string, len(raw))
				for k, v := range raw {
					jobParams[k] = fmt.Sprint(v)
				}
			}

			run, err := deps.Client.RunJobNow(ctx, in.JobID, jobParams)
			if err != nil {
				deps.Log.Error("Tool: start_job failed", "job_id", in.JobID, "error", err)
				return errorResult("start_job", err)
			}

			deps.Log.Info("Tool: start_job success", "job_id", in.JobID, "run_id", run.RunId)
			return successMessage("Job: %d started successfully.", in.JobID)
		})
}

// NewListJobsTool lists job definitions with optional name filter and paging.
func NewListJobsTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"limit":        prop("integer", "Number of jobs to return (defaults to 20)."),
		"expand_tasks": prop("boolean", "Whether to include task and cluster details."),
		"name":         prop("string", "Filter jobs by an exact name match."),
		"page_token":   prop("string", "Opaque token to page through results."),
	})

	return New("list_jobs",
		"List all jobs via the Databricks REST API.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				Limit       *int   `json:"limit"`
				ExpandTasks bool   `json:"expand_tasks"`
				Name        string `json:"name"`
				PageToken   string `json:"page_token"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("list_jobs", err)
			}

			limit := 20
			if in.Limit != nil {
				limit = *in.Limit
			}

			jobList, err := deps.Client.ListJobs(ctx, jobs.ListJobsRequest{
				Limit:       limit,
				ExpandTasks: in.ExpandTasks,
				Name:        in.Name,
				PageToken:   in.PageToken,
			})
			if err != nil {
				deps.Log.Error("Tool: list_jobs failed", "error", err)
				return errorResult("list_jobs", err)
			}

			return marshalResult("list_jobs", jobList)
		})
}

// NewCancelJobTool cancels all active runs of a job.
func NewCancelJobTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"job_id": prop("integer", "The job whose runs are cancelled (required)."),
	}, "job_id")

	return New("cancel_job",
		"Cancel a job run via the Databricks REST API. The 'job_id' parameter is required.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				JobID int64 `json:"job_id"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("cancel_job", err)
			}

			if err := deps.Client.CancelJobRuns(ctx, in.JobID); err != nil {
				deps.Log.Error("Tool: cancel_job failed", "job_id", in.JobID, "error", err)
				return errorResult("cancel_job", err)
			}

			deps.Log.Info("Tool: cancel_job success", "job_id", in.JobID)
			return successMessage("Job: %d cancelled successfully.", in.JobID)
		})
}

// NewGetJobDetailsTool retrieves the full configuration of one job.
func NewGetJobDetailsTool(deps Deps) Tool {
	params := objectSchema(map[string]any{
		"job_id":     prop("integer", "The job to fetch (required)."),
		"page_token": prop("string", "Opaque token to page through a large task list."),
	}, "job_id")

	return New("get_job_details",
		"Retrieves the full configuration and metadata for a single job definition via the Databricks REST API. The 'job_id' parameter is required.",
		params,
		func(ctx context.Context, args string) string {
			var in struct {
				JobID     int64  `json:"job_id"`
				PageToken string `json:"page_token"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errorResult("get_job_details", err)
			}

			job, err := deps.Client.GetJob(ctx, in.JobID, in.PageToken)
			if err != nil {
				deps.Log.Error("Tool: get_job_details failed", "job_id", in.JobID, "error", err)
				return errorResult("get_job_details", err)
			}

			return marshalResult("get_job_details", job)
		})
}
