// Copyright 2015-2020 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"fmt"
	"time"

	"github.com/hildxd/rcli/flags"
	"github.com/hildxd/rcli/jwt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
	"k8s.io/klog/v2"
)

const secretEnv = "RCLI_JWT_SECRET"

func newJwtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "jwt sign/verify",
	}

	cmd.AddCommand(
		newJwtSignCmd(),
		newJwtVerifyCmd(),
	)
	return cmd
}

func newJwtSignCmd() *cobra.Command {
	var (
		sub, secret string
		aud         flags.Strings
		exp         = flags.Duration(14 * 24 * time.Hour)
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "sign a claim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			klog.V(2).Infof("sign sub %q aud %q exp %s", sub, aud.String(), exp.String())

			token, err := jwt.Sign(jwt.SignOptions{
				Subject:  sub,
				Audience: aud.Get(),
				Expiry:   time.Duration(exp),
				Secret:   secretFlag(cmd, secret),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&sub, "sub", "s", "", "subject")
	fs.VarP(&aud, "aud", "a", "audience, may be repeated")
	fs.VarP(&exp, "exp", "e", "expiry, e.g. 30s, 10m, 12h, 14d")
	fs.StringVar(&secret, "secret", "", "hmac secret, defaults to $"+secretEnv)
	cmd.MarkFlagRequired("sub")

	return cmd
}

func newJwtVerifyCmd() *cobra.Command {
	var token, aud, secret string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "verify a claim",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := jwt.Verify(token, jwt.VerifyOptions{
				Secret:   secretFlag(cmd, secret),
				Audience: aud,
			})
			if err != nil {
				return err
			}

			b, err := yaml.Marshal(claims)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&token, "token", "t", "", "token to verify")
	fs.StringVarP(&aud, "aud", "a", "", "required audience")
	fs.StringVar(&secret, "secret", "", "hmac secret, defaults to $"+secretEnv)
	cmd.MarkFlagRequired("token")

	return cmd
}

// secretFlag returns --secret, or $RCLI_JWT_SECRET when the flag is unset.
func secretFlag(cmd *cobra.Command, secret string) []byte {
	if !cmd.Flags().Changed("secret") {
		secret = flags.Env(secretEnv, "")
	}
	return []byte(secret)
}
