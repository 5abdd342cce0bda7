// Copyright 2023 FoxDen Industries
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package cfa635 drives Crystalfontz CFA635-xxx-KU LCD modules over their
// USB-serial command protocol: CRC-framed request/response packets plus
// unsolicited key activity reports.
package cfa635

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"
)

const (
	baudRate    = 115200
	readTimeout = time.Second
)

// Panel geometry. The CFA635 family is fixed at 20x4 characters with four
// bicolor LEDs.
const (
	panelWidth    = 20
	panelHeight   = 4
	panelLEDCount = 4
)

// MaxCellsPerWrite is the largest run of cells one WriteCells call can
// carry; two data bytes go to the column and row.
const MaxCellsPerWrite = MaxDataLen - 2

var (
	ErrNotOpen     = errors.New("cfa635: module not open")
	ErrDataTooLong = errors.New("cfa635: data too long for one packet")
	ErrPosition    = errors.New("cfa635: position out of range")
	ErrGlyphIndex  = errors.New("cfa635: special character index out of range")
	ErrGlyphData   = errors.New("cfa635: invalid special character data")
	ErrCursorStyle = errors.New("cfa635: invalid cursor style")
	ErrContrast    = errors.New("cfa635: contrast out of range")
	ErrBacklight   = errors.New("cfa635: backlight brightness out of range")
	ErrLEDIndex    = errors.New("cfa635: LED index out of range")
	ErrLEDDuty     = errors.New("cfa635: LED duty cycle out of range")
	ErrGPIOIndex   = errors.New("cfa635: GPIO index out of range")
	ErrFlashSize   = errors.New("cfa635: user flash data must be exactly 16 bytes")
)

// CursorStyle selects the hardware cursor appearance.
type CursorStyle byte

const (
	CursorNone CursorStyle = iota
	CursorBlinkingBlock
	CursorSolidUnderscore
	CursorBlinkingBlockAndUnderscore
	CursorBlinkingUnderscore
)

// KeyHandler receives decoded key activity reports. Handlers run on the
// reader goroutine and should return quickly.
type KeyHandler func(KeyEvent)

// KeyPollResult is the answer to a PollKeys request: the keys currently
// held, and those pressed or released since the last poll.
type KeyPollResult struct {
	Current  KeyMask
	Pressed  KeyMask
	Released KeyMask
}

// Module is a handle to one CFA635. It may be opened and closed repeatedly;
// key handlers survive reopening.
type Module struct {
	Port string

	dial func() (io.ReadWriteCloser, error)
	log  *logrus.Entry

	link        *link
	keyHandlers []KeyHandler
}

// NewModule prepares a handle for the module on the named serial port. The
// port is not touched until Open.
func NewModule(port string) *Module {
	m := &Module{
		Port: port,
		log:  logrus.WithField("port", port),
	}
	m.dial = func() (io.ReadWriteCloser, error) {
		return serial.OpenPort(&serial.Config{
			Name:        port,
			Baud:        baudRate,
			ReadTimeout: readTimeout,
		})
	}
	return m
}

// Open connects to the module, closing any previous connection first.
func (m *Module) Open() error {
	m.Close()
	conn, err := m.dial()
	if err != nil {
		return errors.Wrapf(err, "cfa635: open %s", m.Port)
	}
	m.link = connect(conn, m.handleReport, m.log)
	return nil
}

// Close releases the serial port. Closing a closed module is a no-op.
func (m *Module) Close() error {
	if m.link == nil {
		return nil
	}
	err := m.link.close()
	m.link = nil
	return err
}

// OnKey registers a handler for key activity reports.
func (m *Module) OnKey(h KeyHandler) {
	m.keyHandlers = append(m.keyHandlers, h)
}

func (m *Module) Width() int    { return panelWidth }
func (m *Module) Height() int   { return panelHeight }
func (m *Module) LEDCount() int { return panelLEDCount }

func (m *Module) handleReport(p *Packet) {
	switch p.Command {
	case ReportKey:
		if len(p.Data) < 1 {
			m.log.WithField("packet", p).Warn("empty key activity report")
			return
		}
		ev, ok := decodeKeyReport(p.Data[0])
		if !ok {
			m.log.WithField("code", p.Data[0]).Warn("unknown key activity code")
			return
		}
		for _, h := range m.keyHandlers {
			m.callKeyHandler(h, ev)
		}
	case ReportFan, ReportTemperature:
		// Not wired to anything on this hardware.
	default:
		m.log.WithField("packet", p).Warn("unknown report command")
	}
}

// callKeyHandler shields the reader goroutine from handler panics: one bad
// handler must not starve packet dispatch.
func (m *Module) callKeyHandler(h KeyHandler, ev KeyEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.log.WithField("panic", r).Error("key handler panicked")
		}
	}()
	h(ev)
}

func (m *Module) send(command byte, data []byte) ([]byte, error) {
	if m.link == nil {
		return nil, ErrNotOpen
	}
	return m.link.send(command, data)
}

// Ping round-trips an empty packet to check the module is alive.
func (m *Module) Ping() error {
	_, err := m.send(0x00, nil)
	return err
}

// Version reads the module's hardware and firmware version string.
func (m *Module) Version() (string, error) {
	data, err := m.send(0x01, nil)
	if err != nil {
		return "", err
	}
	return DecodeText(data), nil
}

// WriteUserFlash stores a 16-byte blob in the module's non-volatile user
// flash.
func (m *Module) WriteUserFlash(data []byte) error {
	if len(data) != UserFlashSize {
		return ErrFlashSize
	}
	_, err := m.send(0x02, data)
	return err
}

// ReadUserFlash reads the 16-byte non-volatile user flash.
func (m *Module) ReadUserFlash() ([]byte, error) {
	data, err := m.send(0x03, nil)
	if err != nil {
		return nil, err
	}
	if len(data) < UserFlashSize {
		return nil, errors.Errorf("cfa635: short user flash read (%d bytes)", len(data))
	}
	return data, nil
}

// SaveAsDefault persists the current module settings as its power-on state.
func (m *Module) SaveAsDefault() error {
	_, err := m.send(0x04, nil)
	return err
}

// Clear fills the display with spaces.
func (m *Module) Clear() error {
	_, err := m.send(0x06, nil)
	return err
}

// SetSpecialChar programs one of the eight CGRAM glyphs. Each of the eight
// rows uses its low six bits as pixels; the upper two bits must be zero.
func (m *Module) SetSpecialChar(i int, glyph *[8]byte) error {
	if i < 0 || i > 7 {
		return ErrGlyphIndex
	}
	for _, b := range glyph {
		if b&0b11000000 != 0 {
			return ErrGlyphData
		}
	}

	data := append([]byte{byte(i)}, glyph[:]...)
	_, err := m.send(0x09, data)
	return err
}

// SetCursor moves the hardware cursor.
func (m *Module) SetCursor(col, row int) error {
	if col < 0 || col >= panelWidth || row < 0 || row >= panelHeight {
		return ErrPosition
	}
	_, err := m.send(0x0B, []byte{byte(col), byte(row)})
	return err
}

// SetCursorStyle selects the hardware cursor appearance.
func (m *Module) SetCursorStyle(style CursorStyle) error {
	if style > CursorBlinkingUnderscore {
		return ErrCursorStyle
	}
	_, err := m.send(0x0C, []byte{byte(style)})
	return err
}

// SetContrast sets the LCD contrast, 0..255.
func (m *Module) SetContrast(level int) error {
	if level < 0 || level > 255 {
		return ErrContrast
	}
	_, err := m.send(0x0D, []byte{byte(level)})
	return err
}

// SetBacklight sets the LCD backlight brightness, 0..100.
func (m *Module) SetBacklight(level int) error {
	if level < 0 || level > 100 {
		return ErrBacklight
	}
	_, err := m.send(0x0E, []byte{byte(level)})
	return err
}

// SetKeyReporting chooses which key presses and releases the module reports
// unsolicited.
func (m *Module) SetKeyReporting(press, release KeyMask) error {
	_, err := m.send(0x17, []byte{press.Raw(), release.Raw()})
	return err
}

// PollKeys reads key state directly instead of waiting for reports.
func (m *Module) PollKeys() (KeyPollResult, error) {
	data, err := m.send(0x18, nil)
	if err != nil {
		return KeyPollResult{}, err
	}
	if len(data) < 3 {
		return KeyPollResult{}, errors.Errorf("cfa635: short key poll response (%d bytes)", len(data))
	}
	return KeyPollResult{
		Current:  KeyMask(data[0]),
		Pressed:  KeyMask(data[1]),
		Released: KeyMask(data[2]),
	}, nil
}

// WriteCells writes raw cell bytes starting at (col, row). Runs longer than
// the remainder of the row continue on the next row.
func (m *Module) WriteCells(col, row int, data []byte) error {
	if col < 0 || col >= panelWidth || row < 0 || row >= panelHeight {
		return ErrPosition
	}
	if len(data) > MaxCellsPerWrite {
		return ErrDataTooLong
	}

	payload := append([]byte{byte(col), byte(row)}, data...)
	_, err := m.send(0x1F, payload)
	return err
}

// WriteString writes text at (col, row), encoded for the display.
func (m *Module) WriteString(col, row int, s string) error {
	return m.WriteCells(col, row, EncodeText(s))
}

// WriteGPIO sets a GPIO/GPO output duty cycle, 0..100.
func (m *Module) WriteGPIO(idx, value int) error {
	if idx < 0 || idx > 12 {
		return ErrGPIOIndex
	}
	if value < 0 || value > 100 {
		return ErrLEDDuty
	}
	_, err := m.send(0x22, []byte{byte(idx), byte(value)})
	return err
}

// WriteGPIODrive is WriteGPIO with an explicit drive mode byte.
func (m *Module) WriteGPIODrive(idx, value, drive int) error {
	if idx < 0 || idx > 12 {
		return ErrGPIOIndex
	}
	if value < 0 || value > 100 {
		return ErrLEDDuty
	}
	_, err := m.send(0x22, []byte{byte(idx), byte(value), byte(drive)})
	return err
}

// ReadGPIO reads a GPIO/GPI state.
func (m *Module) ReadGPIO(idx int) ([]byte, error) {
	if idx < 0 || idx > 12 {
		return nil, ErrGPIOIndex
	}
	return m.send(0x23, []byte{byte(idx)})
}

// ledGPIO maps each LED index to its (red, green) GPO pins.
var ledGPIO = [panelLEDCount][2]byte{
	{12, 11},
	{10, 9},
	{8, 7},
	{6, 5},
}

// SetLED sets both components of one of the four bicolor LEDs, each 0..100.
func (m *Module) SetLED(idx, red, green int) error {
	if idx < 0 || idx >= panelLEDCount {
		return ErrLEDIndex
	}
	if red < 0 || red > 100 || green < 0 || green > 100 {
		return ErrLEDDuty
	}

	pins := ledGPIO[idx]
	if err := m.WriteGPIO(int(pins[0]), red); err != nil {
		return err
	}
	return m.WriteGPIO(int(pins[1]), green)
}
