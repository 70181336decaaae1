// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/metadata"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/queue"
	"github.com/bitmark-inc/ledgerd/signer"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/writer"
)

const (
	signingKeyFilename = "ledgerd.key"
	sendTimeout        = 5 * time.Second
)

// setup command handler
//
// commands that run to create key files these commands cannot access
// any internal database or states or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "generate-key", "key":
		filename := signingKeyFilename
		if len(arguments) >= 1 && "" != arguments[0] {
			filename = arguments[0]
		}
		bits := signer.MinimumBits
		if len(arguments) >= 2 {
			n, err := strconv.Atoi(arguments[1])
			if nil != err {
				exitwithstatus.Message("error in key bits: %s", err)
			}
			bits = n
		}

		if _, err := os.Stat(filename); nil == err {
			fmt.Printf("generate signing key: %q error: file already exists\n", filename)
			exitwithstatus.Exit(1)
		}

		s, err := signer.New(bits, "")
		if nil != err {
			fmt.Printf("generate signing key: %q error: %s\n", filename, err)
			exitwithstatus.Exit(1)
		}
		if err := ioutil.WriteFile(filename, []byte(signer.EncodeKey(s.MarshalKey())+"\n"), 0600); err != nil {
			os.Remove(filename)
			fmt.Printf("generate signing key: %q error: %s\n", filename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated %d bit signing key: %q\n", bits, filename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "submit-key", "submit":
		return false // defer processing until configuration is read

	case "metadata", "m", "block", "b", "initialize", "init":
		return false // defer processing until database is opened

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  generate-key [FILE [BITS]] (key)    - create an RSA signing key in: %q\n", signingKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  submit-key PROVIDER FILE   (submit) - queue registration of a provider signing key\n")
		fmt.Printf("                                        to a running daemon\n")
		fmt.Printf("\n")

		fmt.Printf("  initialize PROVIDER FILE   (init)   - register a provider signing key directly\n")
		fmt.Printf("                                        the daemon must not be running\n")
		fmt.Printf("\n")

		fmt.Printf("  metadata OWNER             (m)      - display chain metadata as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  block OWNER [ID]           (b)      - display a block as JSON, default is the chain head\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	case "submit-key", "submit":
		o, key := providerAndKey(arguments)

		limiter := rate.NewLimiter(rate.Limit(options.Queue.RateLimit), options.Queue.Burst)
		pusher, err := queue.NewPusher(options.Queue.Address, limiter, sendTimeout)
		if nil != err {
			exitwithstatus.Message("error: connect to: %q  error: %s", options.Queue.Address, err)
		}
		defer pusher.Close()

		err = queue.SubmitInitialize(context.Background(), pusher, o, key)
		if nil != err {
			exitwithstatus.Message("error: submit: %s", err)
		}
		fmt.Printf("submitted key for: %q\n", o)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the database is open so these commands can access and change it
func processDataCommand(arguments []string, options *configuration.Configuration, store storage.Store) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	ctx := context.Background()

	switch command {

	case "start", "run":
		return false // continue processing

	case "initialize", "init":
		o, key := providerAndKey(arguments)
		w := writer.New(store, nil, options.Writer.Retries)
		m, err := w.Initialize(ctx, o, key)
		if nil != err {
			exitwithstatus.Message("error: initialize: %q  error: %s", o, err)
		}
		printJSON(m)

	case "metadata", "m":
		o := ownerArgument(arguments)
		m, err := metadata.Read(ctx, store, o)
		if nil != err {
			exitwithstatus.Message("error: metadata: %q  error: %s", o, err)
		}
		printJSON(m)

	case "block", "b":
		o := ownerArgument(arguments)
		id := ""
		if len(arguments) > 1 {
			id = strings.TrimSpace(arguments[1])
		} else {
			m, err := metadata.Read(ctx, store, o)
			if nil != err {
				exitwithstatus.Message("error: metadata: %q  error: %s", o, err)
			}
			if m.IsEmpty() {
				exitwithstatus.Message("error: owner: %q has no blocks", o)
			}
			id = m.Head()
		}
		b, err := block.Read(ctx, store, o, id)
		if nil != err {
			exitwithstatus.Message("error: block: %q  error: %s", id, err)
		}
		printJSON(b)

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func ownerArgument(arguments []string) owner.Owner {
	if len(arguments) < 1 {
		exitwithstatus.Message("missing owner argument")
	}
	o, err := owner.Parse(strings.TrimSpace(arguments[0]))
	if nil != err {
		exitwithstatus.Message("error in owner: %q  error: %s", arguments[0], err)
	}
	if !o.HasProvider() {
		exitwithstatus.Message("error: owner must have a provider")
	}
	return o
}

// provider and the key text from a file written by generate-key
func providerAndKey(arguments []string) (owner.Owner, string) {
	if len(arguments) < 2 {
		exitwithstatus.Message("missing provider and key file arguments")
	}
	o := ownerArgument(arguments)
	key, err := ioutil.ReadFile(arguments[1])
	if nil != err {
		exitwithstatus.Message("error: read key: %q  error: %s", arguments[1], err)
	}
	return owner.New(o.Provider, ""), strings.TrimSpace(string(key))
}

func printJSON(item interface{}) {
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		exitwithstatus.Message("error: JSON: %s", err)
	}
	fmt.Printf("%s\n", b)
}
