package main

import (
	"errors"
	"fmt"

	"github.com/unilorin-sug/election/internal/queue"

	"github.com/spf13/cobra"
)

func reconcileCommand() *cobra.Command {
	var (
		electionID uint
		async      bool
	)
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute candidate tallies of an election from its votes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if electionID == 0 {
				return errors.New("--election is required")
			}
			c, err := openContainer(cmd)
			if err != nil {
				return err
			}
			if async {
				if !c.QueueClient.Enabled() {
					return errors.New("queue is disabled")
				}
				if err := c.QueueClient.EnqueueTallyReconcile(queue.TallyReconcilePayload{ElectionID: electionID}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reconcile of election #%d queued\n", electionID)
				return nil
			}
			corrections, err := c.BallotService.ReconcileTallies(cmd.Context(), electionID)
			if err != nil {
				return err
			}
			if len(corrections) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "election #%d tallies are consistent\n", electionID)
				return nil
			}
			for _, item := range corrections {
				fmt.Fprintf(cmd.OutOrStdout(), "candidate #%d: %d -> %d\n", item.CandidateID, item.Previous, item.Actual)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&electionID, "election", 0, "election id")
	cmd.Flags().BoolVar(&async, "async", false, "enqueue the job instead of running it inline")
	return cmd
}
