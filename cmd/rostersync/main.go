package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"k8s.io/test-infra/pkg/flagutil"
	"k8s.io/test-infra/prow/config/secret"
	prowflagutil "k8s.io/test-infra/prow/flagutil"

	"github.com/iambami/community/internal/pkg/lib"
	"github.com/iambami/community/internal/pkg/roster"
	"github.com/iambami/community/internal/pkg/rostersync"
)

type options struct {
	sync   rostersync.Options
	github prowflagutil.GitHubOptions
}

// validate validates sync and github options.
func (o *options) validate() error {
	if err := o.sync.Validate(); err != nil {
		return err
	}
	for idx, group := range []flagutil.OptionGroup{&o.github} {
		if err := group.Validate(o.sync.DryRun); err != nil {
			return fmt.Errorf("%d: %w", idx, err)
		}
	}

	return nil
}

func gatherOptions() options {
	o := options{}
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	o.sync.AddFlags(fs)

	for _, group := range []flagutil.OptionGroup{&o.github} {
		group.AddFlags(fs)
	}
	_ = fs.Parse(os.Args[1:])
	return o
}

func main() {
	o := gatherOptions()
	if err := o.validate(); err != nil {
		logrus.Fatalf("Invalid options: %v", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	log := logrus.StandardLogger().WithField("component", "rostersync")

	secretAgent := &secret.Agent{}
	if err := secretAgent.Start([]string{o.github.TokenPath}); err != nil {
		logrus.WithError(err).Fatal("Error starting secrets agent.")
	}

	githubClient, err := o.github.GitHubClient(secretAgent, o.sync.DryRun)
	if err != nil {
		logrus.WithError(err).Fatal("Error getting GitHub client.")
	}
	// NOTICE: This error is only possible when using the GitHub APP,
	// but if we use the APP auth later we will have to handle the err.
	_ = githubClient.Throttle(360, 360)

	// The cache lives exactly as long as this run.
	cache := lib.NewProfileCache()
	lookup := func(login string) (*roster.Profile, error) {
		return lib.LookupProfile(context.Background(), log, githubClient, cache, login)
	}

	if err := rostersync.Sync(log, githubClient, lookup, &o.sync); err != nil {
		log.WithError(err).Fatal("Failed to sync the maintainer roster.")
	}
	log.Info("Roster sync finished.")
}
