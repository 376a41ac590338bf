package smartcube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

var (
	ErrNotConnected     = errors.New("smartcube: not connected to device")
	ErrAlreadyConnected = errors.New("smartcube: already connected to a device")
	ErrDeviceNotFound   = errors.New("smartcube: device not found")
	ErrServiceNotFound  = errors.New("smartcube: GoCube service not found")
)

var (
	serviceUUID = bluetooth.NewUUID([16]byte(ServiceUUID))
	txCharUUID  = bluetooth.NewUUID([16]byte(TxCharUUID))
	rxCharUUID  = bluetooth.NewUUID([16]byte(RxCharUUID))
)

// Device is a GoCube found by Scan.
type Device struct {
	Name    string
	Address string
	RSSI    int16

	addr bluetooth.Address
}

// Client is a connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	log     *logrus.Logger

	mu        sync.RWMutex
	device    bluetooth.Device
	rxChar    bluetooth.DeviceCharacteristic
	connected bool
	name      string
	battery   int

	onMessage     func(*Message)
	onMove        func(cubesim.Move)
	onOrientation func(Orientation)
}

// NewClient enables the default adapter.
func NewClient(log *logrus.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{adapter: adapter, log: log, battery: -1}, nil
}

// OnMove sets the callback for decoded turns. It runs on the BLE
// notification goroutine.
func (c *Client) OnMove(cb func(cubesim.Move)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMove = cb
}

// OnMessage sets a callback that sees every valid frame before it is
// decoded.
func (c *Client) OnMessage(cb func(*Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = cb
}

// OnOrientation sets the callback for orientation updates.
func (c *Client) OnOrientation(cb func(Orientation)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOrientation = cb
}

// Scan lists GoCube devices advertising within timeout.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]Device, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		devices []Device
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			addr := r.Address.String()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true
			devices = append(devices, Device{Name: name, Address: addr, RSSI: r.RSSI, addr: r.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	if err := c.adapter.StopScan(); err != nil {
		c.log.WithError(err).Warn("stop scan")
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return devices, nil
}

// Connect connects to d and subscribes to notifications.
func (c *Client) Connect(d Device) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	device, err := c.adapter.Connect(d.addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.name = d.Name
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"device": d.Name, "address": d.Address}).Info("connected")

	return c.SendCommand(CmdRequestBattery)
}

// ConnectFirst scans and connects to the first GoCube found.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) (Device, error) {
	devices, err := c.Scan(ctx, timeout)
	if err != nil {
		return Device{}, err
	}
	if len(devices) == 0 {
		return Device{}, ErrDeviceNotFound
	}
	return devices[0], c.Connect(devices[0])
}

// Disconnect closes the connection.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.name = ""
	c.battery = -1
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Battery returns the last known battery level, or -1.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

// ResetSolved tells the cube its current physical state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(CmdResetSolved)
}

func (c *Client) handleNotification(data []byte) {
	msg, err := ParseMessage(data)
	if err != nil {
		c.log.WithError(err).Debug("dropped frame")
		return
	}
	c.dispatch(msg)
}

func (c *Client) dispatch(msg *Message) {
	c.mu.RLock()
	raw := c.onMessage
	c.mu.RUnlock()
	if raw != nil {
		raw(msg)
	}

	switch msg.Type {
	case MsgTypeRotation:
		moves, err := DecodeRotation(msg.Payload)
		if err != nil {
			c.log.WithError(err).Warn("bad rotation")
			return
		}
		c.mu.RLock()
		cb := c.onMove
		c.mu.RUnlock()
		for _, m := range moves {
			c.log.WithField("move", m.Notation()).Debug("cube turned")
			if cb != nil {
				cb(m)
			}
		}

	case MsgTypeBattery:
		level, err := DecodeBattery(msg.Payload)
		if err != nil {
			return
		}
		c.mu.Lock()
		c.battery = level
		c.mu.Unlock()

	case MsgTypeOrientation:
		o, err := DecodeOrientation(msg.Payload)
		if err != nil {
			return
		}
		c.mu.RLock()
		cb := c.onOrientation
		c.mu.RUnlock()
		if cb != nil {
			cb(*o)
		}

	default:
		c.log.WithField("type", MessageTypeName(msg.Type)).Debug("ignored message")
	}
}
