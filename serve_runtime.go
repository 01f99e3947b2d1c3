package main

import (
	"net"

	"github.com/morenav/morenav/internal/config"
)

func applyServeOverrides(cfg *config.Config, sshAddr, webAddr string) {
	if sshAddr != "" {
		cfg.SSHAddr = sshAddr
	}
	if webAddr != "" {
		cfg.WebTerminalAddr = webAddr
	}
}

// localSSHTarget turns an SSH listen address into one the web bridge can
// dial on this host.
func localSSHTarget(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return listenAddr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
