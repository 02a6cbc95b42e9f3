package discovery

import (
	"fmt"
	"log"
	"strconv"

	"question-bank-service/internal/config"

	"github.com/hashicorp/consul/api"
)

type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

var ServiceDiscovery *ServiceRegistry

// Initialize ServiceDiscovery - should be called after config is loaded
func InitServiceDiscovery(cfg *config.Config) error {
	var err error
	ServiceDiscovery, err = NewServiceRegistry(cfg)
	if err != nil {
		return fmt.Errorf("service Discovery Init Failed: %s", err)
	}

	if err := ServiceDiscovery.Register(); err != nil {
		return fmt.Errorf("failed to register service: %s", err)
	}

	log.Println("Service Discovery initialized successfully")
	return nil
}

func NewServiceRegistry(cfg *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.Consul.Address

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	return &ServiceRegistry{
		client: client,
		config: cfg,
	}, nil
}

func (sr *ServiceRegistry) Register() error {
	httpPort, err := strconv.Atoi(sr.config.Server.Port)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %v", err)
	}

	serviceID := fmt.Sprintf("%s-%s", sr.config.Server.ServiceName, sr.config.Consul.ServiceAddress)

	httpRegistration := &api.AgentServiceRegistration{
		ID:      serviceID + "-http",
		Name:    sr.config.Server.ServiceName,
		Port:    httpPort,
		Address: sr.config.Consul.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.config.Consul.ServiceAddress, sr.config.Server.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"question-bank", "master-data", "http", "api"},
		Meta: map[string]string{
			"protocol": "http",
			"version":  sr.config.Server.Version,
		},
	}

	if err := sr.client.Agent().ServiceRegister(httpRegistration); err != nil {
		return fmt.Errorf("failed to register HTTP service with Consul: %v", err)
	}

	log.Printf("Successfully registered HTTP service %s with Consul at %s:%d",
		sr.config.Server.ServiceName, sr.config.Consul.ServiceAddress, httpPort)
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	serviceID := fmt.Sprintf("%s-%s", sr.config.Server.ServiceName, sr.config.Consul.ServiceAddress)

	if err := sr.client.Agent().ServiceDeregister(serviceID + "-http"); err != nil {
		log.Printf("Error deregistering HTTP service: %v", err)
		return err
	}

	log.Printf("Successfully deregistered service %s from Consul", sr.config.Server.ServiceName)
	return nil
}

// FindService looks up a service by name in Consul
func (sr *ServiceRegistry) FindService(serviceName string) ([]*api.ServiceEntry, error) {
	services, meta, err := sr.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %v", serviceName, err)
	}

	log.Printf("Found %d instances of service %s (ConsulIndex: %d)", len(services), serviceName, meta.LastIndex)

	if len(services) == 0 {
		return nil, fmt.Errorf("no healthy instances of service %s found", serviceName)
	}

	return services, nil
}

// HealthCheck performs a health check on the service
func (sr *ServiceRegistry) HealthCheck() error {
	_, err := sr.client.Status().Leader()
	if err != nil {
		return fmt.Errorf("consul connection failed: %v", err)
	}

	services, err := sr.client.Agent().Services()
	if err != nil {
		return fmt.Errorf("failed to get services: %v", err)
	}

	serviceID := fmt.Sprintf("%s-%s-http", sr.config.Server.ServiceName, sr.config.Consul.ServiceAddress)
	if _, exists := services[serviceID]; !exists {
		return fmt.Errorf("service %s not registered", serviceID)
	}

	return nil
}
