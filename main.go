// Copyright 2015-2020 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"fmt"
	"os"

	"github.com/hildxd/rcli/flags"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	err := newRootCmd().Execute()
	klog.Flush()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rcli",
		Short:        "rcli is a small toolbox: a static http file server and a jwt signer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags.AddGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newHttpCmd(newHttpOptions()),
		newJwtCmd(),
	)
	return cmd
}
