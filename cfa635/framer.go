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

package cfa635

// framer reassembles packets from an append-only byte stream. A frame whose
// length byte exceeds MaxDataLen or whose CRC does not verify is not an
// error: the framer drops a single byte and rescans, resynchronising on the
// next plausible frame boundary.
type framer struct {
	buf []byte
}

func (f *framer) push(b []byte) {
	f.buf = append(f.buf, b...)
}

// next returns the next complete packet buffered, or nil if more bytes are
// needed. Trailing bytes past the returned frame stay buffered.
func (f *framer) next() *Packet {
	for {
		if len(f.buf) < 4 {
			return nil
		}

		dataLen := int(f.buf[1])
		if dataLen > MaxDataLen {
			f.buf = f.buf[1:]
			continue
		}

		total := dataLen + 4
		if len(f.buf) < total {
			return nil
		}

		body, ok := popCRC(f.buf[:total])
		if !ok {
			f.buf = f.buf[1:]
			continue
		}

		p := parsePacket(body)
		f.buf = f.buf[total:]
		return p
	}
}
