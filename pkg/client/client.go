package client

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/response"
)

// Config configures a Client.
type Config struct {
	// Endpoint is the client endpoint name.
	Endpoint string

	// Catalog resolves object models for registered instances.
	// Defaults to model.DefaultCatalog().
	Catalog *model.Catalog

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Events receives a READ or EXECUTE event per dispatched call.
	Events log.Logger
}

// Client holds the objects exposed by a device.
type Client struct {
	mu      sync.RWMutex
	objects map[uint16]*ObjectEnabler

	endpoint string
	catalog  *model.Catalog
	logger   *slog.Logger
	events   log.Logger
	closed   bool
}

// New creates an empty client.
func New(cfg Config) *Client {
	if cfg.Catalog == nil {
		cfg.Catalog = model.DefaultCatalog()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		objects:  make(map[uint16]*ObjectEnabler),
		endpoint: cfg.Endpoint,
		catalog:  cfg.Catalog,
		logger:   cfg.Logger,
		events:   log.OrNoop(cfg.Events),
	}
}

// Endpoint returns the endpoint name.
func (c *Client) Endpoint() string { return c.endpoint }

// Catalog returns the object catalog.
func (c *Client) Catalog() *model.Catalog { return c.catalog }

// AddInstance registers an instance, creating its object enabler on first use.
// It fails with ErrClientClosed after Close; the caller still owns inst.
func (c *Client) AddInstance(inst Instance) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("%w: cannot add /%d/%d", ErrClientClosed, inst.ObjectID(), inst.InstanceID())
	}

	e, exists := c.objects[inst.ObjectID()]
	if !exists {
		obj, err := c.catalog.Object(inst.ObjectID())
		if err != nil {
			c.logger.Debug("instance without catalog entry", "object", inst.ObjectID())
			obj = nil
		}
		e = NewObjectEnabler(inst.ObjectID(), obj)
		c.objects[inst.ObjectID()] = e
	}
	if err := e.AddInstance(inst); err != nil {
		return err
	}

	c.logger.Info("instance registered", "object", inst.ObjectID(), "instance", inst.InstanceID())
	return nil
}

// Object returns the enabler for an object id.
func (c *Client) Object(id uint16) (*ObjectEnabler, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.objects[id]
	if !exists {
		return nil, fmt.Errorf("%w: /%d", ErrObjectNotFound, id)
	}
	return e, nil
}

// ObjectIDs returns the registered object ids in ascending order.
func (c *Client) ObjectIDs() []uint16 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]uint16, 0, len(c.objects))
	for id := range c.objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Instance returns a registered instance.
func (c *Client) Instance(objectID, instanceID uint16) (Instance, error) {
	e, err := c.Object(objectID)
	if err != nil {
		return nil, err
	}
	return e.Instance(instanceID)
}

// Read reads one resource.
func (c *Client) Read(objectID, instanceID, resourceID uint16) *response.ReadResponse {
	var resp *response.ReadResponse
	if e, err := c.Object(objectID); err != nil {
		resp = response.ReadNotFound()
	} else {
		resp = e.Read(instanceID, resourceID)
	}

	ev := &log.ReadEvent{ResourceID: resourceID, Code: resp.Code.String()}
	if resp.Content != nil {
		if data, err := node.EncodeResource(resp.Content); err == nil {
			ev.Content = data
		}
	}
	c.events.Log(log.Event{
		Timestamp:  time.Now(),
		Endpoint:   c.endpoint,
		Category:   log.CategoryRead,
		ObjectID:   objectID,
		InstanceID: instanceID,
		Read:       ev,
	})
	return resp
}

// ReadPath reads the resource addressed by a path such as "/3304/0/5700".
func (c *Client) ReadPath(path string) *response.ReadResponse {
	p, err := resourcePath(path)
	if err != nil {
		return response.ReadBadRequest(err.Error())
	}
	return c.Read(p.ObjectID, *p.InstanceID, *p.ResourceID)
}

// Execute executes one resource.
func (c *Client) Execute(objectID, instanceID, resourceID uint16, params string) *response.ExecuteResponse {
	var resp *response.ExecuteResponse
	if e, err := c.Object(objectID); err != nil {
		resp = response.ExecuteNotFound()
	} else {
		resp = e.Execute(instanceID, resourceID, params)
	}

	c.events.Log(log.Event{
		Timestamp:  time.Now(),
		Endpoint:   c.endpoint,
		Category:   log.CategoryExecute,
		ObjectID:   objectID,
		InstanceID: instanceID,
		Execute: &log.ExecuteEvent{
			ResourceID: resourceID,
			Params:     params,
			Code:       resp.Code.String(),
		},
	})
	return resp
}

// ExecutePath executes the resource addressed by path.
func (c *Client) ExecutePath(path, params string) *response.ExecuteResponse {
	p, err := resourcePath(path)
	if err != nil {
		return response.ExecuteBadRequest(err.Error())
	}
	return c.Execute(p.ObjectID, *p.InstanceID, *p.ResourceID, params)
}

// Close closes every instance. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	enablers := make([]*ObjectEnabler, 0, len(c.objects))
	for _, e := range c.objects {
		enablers = append(enablers, e)
	}
	c.mu.Unlock()

	var errs []error
	for _, e := range enablers {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func resourcePath(s string) (node.Path, error) {
	p, err := node.ParsePath(s)
	if err != nil {
		return node.Path{}, err
	}
	if !p.IsResource() {
		return node.Path{}, fmt.Errorf("%w: %s is not a resource path", node.ErrInvalidArgument, s)
	}
	return p, nil
}
