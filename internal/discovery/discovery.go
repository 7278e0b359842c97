// Package discovery announces a drop server over mDNS and finds others on
// the local network. Discovery carries only name, address, and port; nothing
// about stored messages or their bindings is advertised.
package discovery

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	serviceType   = "_geoseal._tcp"
	serviceDomain = "local."
	browsePeriod  = 5 * time.Second
)

// Peer is one drop server found on the local network.
type Peer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// Service broadcasts this server's presence and keeps a registry of peers
// seen on the network.
type Service struct {
	instance string
	port     int

	mu     sync.RWMutex
	server *zeroconf.Server
	peers  map[string]Peer

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a discovery service for the named instance.
func NewService(instance string, port int) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		instance: instance,
		port:     port,
		peers:    make(map[string]Peer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the mDNS service and begins browsing for peers.
func (s *Service) Start() error {
	server, err := zeroconf.Register(
		s.instance,
		serviceType,
		serviceDomain,
		s.port,
		[]string{"version=0.1.0"},
		nil,
	)
	if err != nil {
		return fmt.Errorf("register mdns service: %w", err)
	}

	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	log.Printf("broadcasting as %q on port %d", s.instance, s.port)
	go s.browseLoop()
	return nil
}

// Stop withdraws the announcement and ends browsing.
func (s *Service) Stop() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		s.server.Shutdown()
		s.server = nil
	}
}

// Peers returns a snapshot of the servers seen so far.
func (s *Service) Peers() []Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Peer, 0, len(s.peers))
	for _, p := range s.peers {
		out = append(out, p)
	}
	return out
}

func (s *Service) browseLoop() {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		log.Printf("mdns resolver failed: %v", err)
		return
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		entries := make(chan *zeroconf.ServiceEntry, 16)
		go func() {
			for entry := range entries {
				if entry.Instance == s.instance {
					continue
				}
				s.record(entry)
			}
		}()

		ctx, cancel := context.WithTimeout(s.ctx, browsePeriod)
		if err := resolver.Browse(ctx, serviceType, serviceDomain, entries); err != nil {
			log.Printf("mdns browse failed: %v", err)
		}
		<-ctx.Done()
		cancel()
	}
}

func (s *Service) record(entry *zeroconf.ServiceEntry) {
	address := ""
	if len(entry.AddrIPv4) > 0 {
		address = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		address = entry.AddrIPv6[0].String()
	}
	if address == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[entry.Instance] = Peer{
		Name:    entry.Instance,
		Address: address,
		Port:    entry.Port,
	}
}
