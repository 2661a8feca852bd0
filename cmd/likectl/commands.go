package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"maple-blog/internal/domain"
	"maple-blog/internal/reconcile"
)

type options struct {
	apiURL    string
	storePath string
	asJSON    bool
}

type session struct {
	store      *reconcile.BadgerStore
	backend    *reconcile.HTTPBackend
	reconciler *reconcile.Reconciler
}

func (o *options) open() (*session, error) {
	store, err := reconcile.OpenBadgerStore(o.storePath)
	if err != nil {
		return nil, err
	}
	backend := reconcile.NewHTTPBackend(o.apiURL, nil)
	r, err := reconcile.New(backend, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &session{store: store, backend: backend, reconciler: r}, nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".likectl")
	}
	return filepath.Join(dir, "maple-blog", "likectl")
}

func defaultAPI() string {
	if v := os.Getenv("LIKECTL_API"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "likectl",
		Short:         "Toggle and inspect likes as this device",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", defaultAPI(), "blog API base URL")
	root.PersistentFlags().StringVar(&opts.storePath, "store", defaultStorePath(), "local state directory (empty for in-memory)")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON")

	root.AddCommand(
		newDeviceCmd(opts),
		newStatusCmd(opts),
		newToggleCmd(opts),
		newLikedCmd(opts),
	)
	return root
}

func newDeviceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Print this device's id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.store.Close()

			fmt.Fprintln(cmd.OutOrStdout(), s.reconciler.DeviceID())
			return nil
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status post <slug>",
		Short: "Show a post's like count and whether this device liked it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != string(reconcile.KindPost) {
				return fmt.Errorf("status supports posts only, got %q", args[0])
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.store.Close()

			state, err := s.backend.PostStatus(cmd.Context(), args[1], s.reconciler.DeviceID())
			if err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), opts.asJSON, reconcile.PostKey(args[1]), state, reconcile.PhaseConfirmed)
		},
	}
}

func newToggleCmd(opts *options) *cobra.Command {
	var commentType string

	cmd := &cobra.Command{
		Use:   "toggle post|comment <id>",
		Short: "Like or unlike a post or comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], args[1], commentType)
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.store.Close()

			if key.Kind == reconcile.KindPost {
				if state, err := s.backend.PostStatus(cmd.Context(), key.ID, s.reconciler.DeviceID()); err == nil {
					s.reconciler.Seed(key, state)
				}
			}

			state, err := s.reconciler.Toggle(cmd.Context(), key)
			_, phase, _ := s.reconciler.State(key)
			if err != nil {
				_ = printState(cmd.ErrOrStderr(), opts.asJSON, key, state, phase)
				return err
			}
			return printState(cmd.OutOrStdout(), opts.asJSON, key, state, phase)
		},
	}
	cmd.Flags().StringVar(&commentType, "type", string(domain.CommentTypeBlog), "comment type (blog or telegram)")
	return cmd
}

func newLikedCmd(opts *options) *cobra.Command {
	var commentType string

	cmd := &cobra.Command{
		Use:   "liked post|comment",
		Short: "List what this device has liked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseKey(args[0], "", commentType)
			if err != nil {
				return err
			}
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.store.Close()

			ids, err := s.store.Liked(key.Bucket())
			if err != nil {
				return err
			}
			if opts.asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ids)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&commentType, "type", string(domain.CommentTypeBlog), "comment type (blog or telegram)")
	return cmd
}

func parseKey(kind, id, commentType string) (reconcile.Key, error) {
	switch reconcile.Kind(kind) {
	case reconcile.KindPost:
		return reconcile.PostKey(id), nil
	case reconcile.KindComment:
		t, ok := domain.ParseCommentType(commentType)
		if !ok {
			return reconcile.Key{}, fmt.Errorf("unknown comment type %q", commentType)
		}
		return reconcile.CommentKey(id, t), nil
	}
	return reconcile.Key{}, fmt.Errorf("unknown kind %q, want post or comment", kind)
}

func printState(w io.Writer, asJSON bool, key reconcile.Key, state reconcile.State, phase reconcile.Phase) error {
	if asJSON {
		return json.NewEncoder(w).Encode(struct {
			Entity string `json:"entity"`
			reconcile.State
			Phase string `json:"phase"`
		}{Entity: key.String(), State: state, Phase: phase.String()})
	}

	mark := "not liked"
	if state.IsLiked {
		mark = "liked"
	}
	_, err := fmt.Fprintf(w, "%s: %d likes, %s (%s)\n", key, state.LikeCount, mark, phase)
	return err
}
