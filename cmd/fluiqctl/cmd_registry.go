package main

import (
	"fmt"
	"time"

	"fluiq-workers/internal/common/errors"
	"fluiq-workers/internal/common/validation"
	sessionclose "fluiq-workers/internal/workers/auth/session-close"
	sessionopen "fluiq-workers/internal/workers/auth/session-open"
	listevents "fluiq-workers/internal/workers/calendar/list-events"
	generatecaption "fluiq-workers/internal/workers/captions/generate-caption"
	dealcreate "fluiq-workers/internal/workers/deals/deal-create"
	dealdelete "fluiq-workers/internal/workers/deals/deal-delete"
	deallist "fluiq-workers/internal/workers/deals/deal-list"
	dealupdate "fluiq-workers/internal/workers/deals/deal-update"
	exportpitchdeck "fluiq-workers/internal/workers/pitch/export-pitch-deck"
	listtemplates "fluiq-workers/internal/workers/templates/list-templates"
	"fluiq-workers/pkg/registry"

	"github.com/spf13/cobra"
)

const registryVersion = "1.0.0"

var registryPath string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Export or check the activity registry",
}

var registryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the registry of every task type this binary serves",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry(time.Now())
		if err != nil {
			return err
		}
		if err := reg.Save(registryPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d activities to %s\n", len(reg.Activities), registryPath)
		return nil
	},
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a registry file and compare it with the served task types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := reg.Validate(); err != nil {
			return err
		}

		served, err := buildRegistry(time.Now())
		if err != nil {
			return err
		}
		listed := make(map[string]bool, len(reg.Activities))
		for _, a := range reg.Activities {
			listed[a.TaskType] = true
		}
		var missing []string
		for _, a := range served.Activities {
			if !listed[a.TaskType] {
				missing = append(missing, a.TaskType)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("registry is missing task types %v", missing)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil
	},
}

func init() {
	registryCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "registry file")
	registryCmd.AddCommand(registryExportCmd, registryValidateCmd)
}

type workerInfo struct {
	taskType      string
	displayName   string
	description   string
	category      string
	timeout       time.Duration
	maxJobsActive int
	schema        validation.JSONSchema
	errorCodes    []errors.ErrorCode
	tags          []string
}

var (
	gatedCodes   = []errors.ErrorCode{errors.ErrCodeValidationFailed, errors.ErrCodeUnauthenticated}
	storageCodes = []errors.ErrorCode{errors.ErrCodeStorageReadFailed, errors.ErrCodeStorageWriteFailed}
)

func codes(groups ...[]errors.ErrorCode) []errors.ErrorCode {
	var out []errors.ErrorCode
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func servedWorkers() []workerInfo {
	return []workerInfo{
		{
			taskType: sessionopen.TaskType, displayName: "Open Session", category: "auth",
			description:   "Opens a session for an identity verified upstream",
			timeout:       sessionopen.DefaultConfig().Timeout,
			maxJobsActive: sessionopen.DefaultConfig().MaxJobsActive,
			schema:        sessionopen.GetInputSchema(),
			errorCodes:    []errors.ErrorCode{errors.ErrCodeValidationFailed, errors.ErrCodeStorageWriteFailed},
			tags:          []string{"session"},
		},
		{
			taskType: sessionclose.TaskType, displayName: "Close Session", category: "auth",
			description:   "Revokes a session token and announces the sign-out",
			timeout:       sessionclose.DefaultConfig().Timeout,
			maxJobsActive: sessionclose.DefaultConfig().MaxJobsActive,
			schema:        sessionclose.GetInputSchema(),
			errorCodes:    []errors.ErrorCode{errors.ErrCodeValidationFailed, errors.ErrCodeStorageWriteFailed},
			tags:          []string{"session"},
		},
		{
			taskType: generatecaption.TaskType, displayName: "Generate Caption", category: "captions",
			description:   "Picks a caption for a niche, city and tone with cascading fallback",
			timeout:       generatecaption.DefaultConfig().Timeout,
			maxJobsActive: generatecaption.DefaultConfig().MaxJobsActive,
			schema:        generatecaption.GetInputSchema(),
			errorCodes:    gatedCodes,
			tags:          []string{"content"},
		},
		{
			taskType: listevents.TaskType, displayName: "List Events", category: "calendar",
			description:   "Filters the event calendar and lays out a month grid",
			timeout:       listevents.DefaultConfig().Timeout,
			maxJobsActive: listevents.DefaultConfig().MaxJobsActive,
			schema:        listevents.GetInputSchema(),
			errorCodes:    gatedCodes,
			tags:          []string{"content"},
		},
		{
			taskType: listtemplates.TaskType, displayName: "List Templates", category: "templates",
			description:   "Lists downloadable templates, optionally by category",
			timeout:       listtemplates.DefaultConfig().Timeout,
			maxJobsActive: listtemplates.DefaultConfig().MaxJobsActive,
			schema:        listtemplates.GetInputSchema(),
			errorCodes:    gatedCodes,
			tags:          []string{"content"},
		},
		{
			taskType: exportpitchdeck.TaskType, displayName: "Export Pitch Deck", category: "pitch",
			description:   "Builds a one-page pitch deck and sends it to the creator",
			timeout:       exportpitchdeck.DefaultConfig().Timeout,
			maxJobsActive: exportpitchdeck.DefaultConfig().MaxJobsActive,
			schema:        exportpitchdeck.GetInputSchema(),
			errorCodes:    codes(gatedCodes, []errors.ErrorCode{errors.ErrCodeExportFailed}),
			tags:          []string{"export"},
		},
		{
			taskType: dealcreate.TaskType, displayName: "Create Deal", category: "deals",
			description:   "Adds a deal to the caller's ledger",
			timeout:       dealcreate.DefaultConfig().Timeout,
			maxJobsActive: dealcreate.DefaultConfig().MaxJobsActive,
			schema:        dealcreate.GetInputSchema(),
			errorCodes:    codes(gatedCodes, storageCodes),
			tags:          []string{"ledger"},
		},
		{
			taskType: dealupdate.TaskType, displayName: "Update Deal", category: "deals",
			description:   "Applies a partial update to one deal",
			timeout:       dealupdate.DefaultConfig().Timeout,
			maxJobsActive: dealupdate.DefaultConfig().MaxJobsActive,
			schema:        dealupdate.GetInputSchema(),
			errorCodes:    codes(gatedCodes, storageCodes, []errors.ErrorCode{errors.ErrCodeDealNotFound}),
			tags:          []string{"ledger"},
		},
		{
			taskType: dealdelete.TaskType, displayName: "Delete Deal", category: "deals",
			description:   "Removes one deal from the caller's ledger",
			timeout:       dealdelete.DefaultConfig().Timeout,
			maxJobsActive: dealdelete.DefaultConfig().MaxJobsActive,
			schema:        dealdelete.GetInputSchema(),
			errorCodes:    codes(gatedCodes, storageCodes, []errors.ErrorCode{errors.ErrCodeDealNotFound}),
			tags:          []string{"ledger"},
		},
		{
			taskType: deallist.TaskType, displayName: "List Deals", category: "deals",
			description:   "Returns the caller's deals with pipeline stats",
			timeout:       deallist.DefaultConfig().Timeout,
			maxJobsActive: deallist.DefaultConfig().MaxJobsActive,
			schema:        deallist.GetInputSchema(),
			errorCodes:    codes(gatedCodes, []errors.ErrorCode{errors.ErrCodeStorageReadFailed}),
			tags:          []string{"ledger"},
		},
	}
}

func buildRegistry(now time.Time) (*registry.ActivityRegistry, error) {
	reg := registry.New(registryVersion, now)
	for _, w := range servedWorkers() {
		errorCodes := make([]string, len(w.errorCodes))
		for i, c := range w.errorCodes {
			errorCodes[i] = string(c)
		}
		err := reg.Add(registry.Activity{
			ID:                   w.taskType,
			DisplayName:          w.displayName,
			Description:          w.description,
			Category:             w.category,
			Version:              registryVersion,
			TaskType:             w.taskType,
			ImplementationStatus: "completed",
			InputSchema:          w.schema,
			ErrorCodes:           errorCodes,
			Timeout:              w.timeout.String(),
			MaxJobsActive:        w.maxJobsActive,
			Tags:                 w.tags,
		})
		if err != nil {
			return nil, err
		}
	}
	reg.Sort()
	return reg, reg.Validate()
}
