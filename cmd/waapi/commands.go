package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"waapi-go/client"
	"waapi-go/config"
	"waapi-go/logger"
	"waapi-go/message"
	"waapi-go/registry"
	"waapi-go/waapi"
	"waapi-go/waapi/catalog"
	"waapi-go/waapi/core"
)

type globalFlags struct {
	configPath string
	url        string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "waapi",
		Short:         "Call the Wwise Authoring API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default $WAAPI_CONFIG)")
	root.PersistentFlags().StringVar(&g.url, "url", "", "WAAPI endpoint, ws:// or http:// (default "+config.DefaultURL+")")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newCallCmd(g),
		newOpsCmd(),
		newDescribeCmd(),
		newInfoCmd(g),
		newSubscribeCmd(g),
		newInstancesCmd(g),
		newRegisterCmd(g),
	)
	return root
}

// load reads the config and applies the global flags on top of it.
func (g *globalFlags) load() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.url != "" {
		cfg.URL = g.url
		cfg.Etcd.Endpoints = nil
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	return cfg, nil
}

func (g *globalFlags) client(cmd *cobra.Command) (*client.Client, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	cli, err := client.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := cli.Connect(cmd.Context()); err != nil {
		cli.Close()
		return nil, err
	}
	return cli, nil
}

// registry returns the etcd registry when endpoints are configured and a
// static one holding cfg.URL otherwise.
func (g *globalFlags) registry() (registry.Registry, *config.Config, func() error, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(cfg.Etcd.Endpoints) == 0 {
		return registry.NewStaticRegistryFor(cfg.Service, cfg.URL), cfg, func() error { return nil }, nil
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	reg, err := registry.NewEtcdRegistry(cfg.Etcd.Endpoints, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return reg, cfg, reg.Close, nil
}

func newCallCmd(g *globalFlags) *cobra.Command {
	var argsJSON, optsJSON string
	cmd := &cobra.Command{
		Use:   "call <uri>",
		Short: "Call a procedure and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			callArgs, err := parseObject("--args", argsJSON)
			if err != nil {
				return err
			}
			callOpts, err := parseObject("--options", optsJSON)
			if err != nil {
				return err
			}

			cli, err := g.client(cmd)
			if err != nil {
				return err
			}
			defer cli.Close()

			res, err := waapi.Call(cmd.Context(), cli, args[0], callArgs, callOpts)
			if err != nil {
				return describeError(err)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&argsJSON, "args", "", "keyword arguments as a JSON object")
	cmd.Flags().StringVar(&optsJSON, "options", "", "call options as a JSON object")
	return cmd
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops [prefix]",
		Short: "List the bound procedures, optionally under a namespace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			ops := catalog.Namespace(prefix)
			if len(ops) == 0 {
				return fmt.Errorf("no procedures under %q", prefix)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, op := range ops {
				fmt.Fprintf(w, "%s\t%s\n", op.URI, paramList(op))
			}
			return w.Flush()
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <uri>",
		Short: "Show the arguments a procedure takes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown procedure %s", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", op.URI)
			fmt.Fprintf(out, "  returns: %v\n", op.Returns)
			if len(op.Params) == 0 {
				fmt.Fprintln(out, "  no arguments")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, p := range op.Params {
				fmt.Fprintf(w, "  %s\t%s\n", p.Name, p.Kind)
			}
			return w.Flush()
		},
	}
}

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print ak.wwise.core.getInfo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := g.client(cmd)
			if err != nil {
				return err
			}
			defer cli.Close()

			res, err := core.GetInfo(cmd.Context(), cli)
			if err != nil {
				return describeError(err)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newSubscribeCmd(g *globalFlags) *cobra.Command {
	var optsJSON string
	cmd := &cobra.Command{
		Use:   "subscribe <topic>",
		Short: "Print events published on a topic until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseObject("--options", optsJSON)
			if err != nil {
				return err
			}
			cli, err := g.client(cmd)
			if err != nil {
				return err
			}
			defer cli.Close()

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			sub, err := cli.Subscribe(cmd.Context(), args[0], opts, func(ev *message.Event) {
				enc.Encode(ev.Kwargs)
			})
			if err != nil {
				return describeError(err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "subscribed to %s (id %d)\n", sub.Topic, sub.ID)

			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&optsJSON, "options", "", "subscription options as a JSON object, e.g. {\"return\":[\"name\"]}")
	return cmd
}

func newInstancesCmd(g *globalFlags) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List the authoring instances the client can reach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, closeReg, err := g.registry()
			if err != nil {
				return err
			}
			defer closeReg()

			out := cmd.OutOrStdout()
			instances, err := reg.Discover(cmd.Context(), cfg.Service)
			if err != nil {
				return err
			}
			printInstances(out, instances)
			if !watch {
				return nil
			}

			for instances := range reg.Watch(cmd.Context(), cfg.Service) {
				fmt.Fprintf(out, "--- %s\n", time.Now().Format(time.RFC3339))
				printInstances(out, instances)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep printing the list whenever it changes")
	return cmd
}

func newRegisterCmd(g *globalFlags) *cobra.Command {
	var (
		weight  int
		version string
		ttl     int64
	)
	cmd := &cobra.Command{
		Use:   "register <addr>",
		Short: "Announce an authoring instance in etcd until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if len(cfg.Etcd.Endpoints) == 0 {
				return errors.New("register needs etcd.endpoints (or WAAPI_ETCD_ENDPOINTS)")
			}
			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			reg, err := registry.NewEtcdRegistry(cfg.Etcd.Endpoints, log)
			if err != nil {
				return err
			}
			defer reg.Close()

			inst := registry.ServiceInstance{Addr: args[0], Weight: weight, Version: version}
			if err := reg.Register(cmd.Context(), cfg.Service, inst, ttl); err != nil {
				return err
			}
			log.Info("instance registered", zap.String("service", cfg.Service), zap.String("addr", inst.Addr))

			<-cmd.Context().Done()

			// the command context is done; deregister with a fresh deadline
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return reg.Deregister(ctx, cfg.Service, inst.Addr)
		},
	}
	cmd.Flags().IntVar(&weight, "weight", 1, "weight for the weighted balancer")
	cmd.Flags().StringVar(&version, "version", "", "authoring application version")
	cmd.Flags().Int64Var(&ttl, "ttl", 10, "lease TTL in seconds")
	return cmd
}

func parseObject(flag, s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("%s must be a JSON object: %w", flag, err)
	}
	return m, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printInstances(w io.Writer, instances []registry.ServiceInstance) {
	if len(instances) == 0 {
		fmt.Fprintln(w, "no instances")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, inst := range instances {
		fmt.Fprintf(tw, "%s\tweight=%d\t%s\n", inst.Addr, inst.Weight, inst.Version)
	}
	tw.Flush()
}

func paramList(op waapi.Operation) string {
	names := make([]string, len(op.Params))
	for i, p := range op.Params {
		names[i] = p.Name
	}
	s := "(" + strings.Join(names, ", ") + ")"
	if op.Returns {
		s += " → result"
	}
	return s
}

// describeError adds the remote error details, which Error() leaves out.
func describeError(err error) error {
	var remote *message.Error
	if errors.As(err, &remote) && len(remote.Details) > 0 {
		details, _ := json.Marshal(remote.Details)
		return fmt.Errorf("%w\ndetails: %s", err, details)
	}
	return err
}
