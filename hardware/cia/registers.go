package cia

// Register offsets within a CIA's 16-byte I/O page: $DC00-$DC0F for CIA1,
// $DD00-$DD0F for CIA2, each mirrored every 16 bytes through the rest of
// their $100-byte I/O window.
const (
	RegPRA = iota
	RegPRB
	RegDDRA
	RegDDRB
	RegTALO
	RegTAHI
	RegTBLO
	RegTBHI
	RegTODTenths
	RegTODSeconds
	RegTODMinutes
	RegTODHours
	RegSDR
	RegICR
	RegCRA
	RegCRB
)

// ReadRegister dispatches a CPU read of one of the CIA's 16 registers.
func (c *CIA) ReadRegister(reg uint8) uint8 {
	switch reg & 0x0f {
	case RegPRA:
		return c.PortA.Read()
	case RegPRB:
		return c.PortB.Read()
	case RegDDRA:
		return c.PortA.DDR
	case RegDDRB:
		return c.PortB.DDR
	case RegTALO:
		return uint8(c.timerA.counter)
	case RegTAHI:
		return uint8(c.timerA.counter >> 8)
	case RegTBLO:
		return uint8(c.timerB.counter)
	case RegTBHI:
		return uint8(c.timerB.counter >> 8)
	case RegTODTenths:
		return c.ReadTOD(0)
	case RegTODSeconds:
		return c.ReadTOD(1)
	case RegTODMinutes:
		return c.ReadTOD(2)
	case RegTODHours:
		return c.ReadTOD(3)
	case RegSDR:
		return c.sdr
	case RegICR:
		return c.ReadICR()
	case RegCRA:
		return c.cra
	case RegCRB:
		return c.crb
	}
	return 0xff
}

// PeekRegister is the debugger-safe, side-effect-free counterpart of
// ReadRegister: it differs only for ICR, which ReadRegister otherwise
// clears (and releases the interrupt line) as a read side effect.
func (c *CIA) PeekRegister(reg uint8) uint8 {
	if reg&0x0f == RegICR {
		return c.icr
	}
	return c.ReadRegister(reg)
}

// WriteRegister dispatches a CPU write to one of the CIA's 16 registers.
func (c *CIA) WriteRegister(reg uint8, data uint8) {
	switch reg & 0x0f {
	case RegPRA:
		c.PortA.Write(data)
	case RegPRB:
		c.PortB.Write(data)
	case RegDDRA:
		c.PortA.DDR = data
	case RegDDRB:
		c.PortB.DDR = data
	case RegTALO:
		c.WriteTimerALatch(&data, nil)
	case RegTAHI:
		c.WriteTimerALatch(nil, &data)
		if !c.timerA.running {
			c.ForceLoadA()
		}
	case RegTBLO:
		c.WriteTimerBLatch(&data, nil)
	case RegTBHI:
		c.WriteTimerBLatch(nil, &data)
		if !c.timerB.running {
			c.ForceLoadB()
		}
	case RegTODTenths:
		c.WriteTOD(0, data, c.crb&0x80 != 0)
	case RegTODSeconds:
		c.WriteTOD(1, data, c.crb&0x80 != 0)
	case RegTODMinutes:
		c.WriteTOD(2, data, c.crb&0x80 != 0)
	case RegTODHours:
		c.WriteTOD(3, data, c.crb&0x80 != 0)
	case RegSDR:
		c.sdr = data
		c.sdrCount = 8
	case RegICR:
		c.WriteIMR(data)
	case RegCRA:
		c.cra = data
		if data&0x01 != 0 {
			c.StartTimerA(data&0x08 != 0)
		} else {
			c.StopTimerA()
		}
		if data&0x10 != 0 {
			c.ForceLoadA()
		}
	case RegCRB:
		c.crb = data
		if data&0x01 != 0 {
			c.StartTimerB(data&0x08 != 0)
		} else {
			c.StopTimerB()
		}
		if data&0x10 != 0 {
			c.ForceLoadB()
		}
	}
}
