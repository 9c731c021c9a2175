package profile

// Control outputs of the flipo.io modules, one row per disc. Two bits are set in
// each row: the pair of driver outputs that put current through the disc coil.

// The 7-segment board is wired with reversed coil polarity relative to the
// dot and matrix boards, so its "on" rows energize what the vendor calls reset.
var (
	seg7On = [][]byte{
		{0b00000100, 0b00000000, 0b10000000},
		{0b00000000, 0b00100000, 0b10000000},
		{0b00100000, 0b00100000, 0b00000000},
		{0b00010000, 0b00100000, 0b00000000},
		{0b00100100, 0b00000000, 0b00000000},
		{0b00100000, 0b00001000, 0b00000000},
		{0b00100000, 0b10000000, 0b00000000},
		{0b00100000, 0b00000000, 0b00100000},
		{0b00100000, 0b00000000, 0b00000001},
		{0b00100000, 0b00000001, 0b00000000},
		{0b00100001, 0b00000000, 0b00000000},
		{0b00010000, 0b00000000, 0b00000001},
		{0b00010000, 0b00000001, 0b00000000},
		{0b00010001, 0b00000000, 0b00000000},
		{0b00000001, 0b00000000, 0b10000000},
		{0b00000000, 0b00000001, 0b10000000},
		{0b00000000, 0b00000000, 0b10000001},
		{0b00000000, 0b00000000, 0b10100000},
		{0b00000000, 0b10000000, 0b10000000},
		{0b00000000, 0b00001000, 0b10000000},
		{0b00010000, 0b10000000, 0b00000000},
		{0b00010000, 0b00001000, 0b00000000},
		{0b00010000, 0b00000000, 0b00100000},
	}
	seg7Off = [][]byte{
		{0b00000010, 0b00000010, 0b00000000},
		{0b00000000, 0b00010010, 0b00000000},
		{0b01000000, 0b00010000, 0b00000000},
		{0b00001000, 0b00010000, 0b00000000},
		{0b01000010, 0b00000000, 0b00000000},
		{0b01000000, 0b00000100, 0b00000000},
		{0b01000000, 0b01000000, 0b00000000},
		{0b01000000, 0b00000000, 0b01000000},
		{0b01000000, 0b00000000, 0b00000100},
		{0b01000000, 0b00000000, 0b00000010},
		{0b11000000, 0b00000000, 0b00000000},
		{0b00001000, 0b00000000, 0b00000100},
		{0b00001000, 0b00000000, 0b00000010},
		{0b10001000, 0b00000000, 0b00000000},
		{0b10000000, 0b00000010, 0b00000000},
		{0b00000000, 0b00000010, 0b00000010},
		{0b00000000, 0b00000010, 0b00000100},
		{0b00000000, 0b00000010, 0b01000000},
		{0b00000000, 0b01000010, 0b00000000},
		{0b00000000, 0b00000110, 0b00000000},
		{0b00001000, 0b01000000, 0b00000000},
		{0b00001000, 0b00000100, 0b00000000},
		{0b00001000, 0b00000000, 0b01000000},
	}

	dots3x1On = [][]byte{
		{0b00100001},
		{0b00101000},
		{0b00100010},
	}
	dots3x1Off = [][]byte{
		{0b11000000},
		{0b01010000},
		{0b01000100},
	}

	line1x3On = [][]byte{
		{0b10000010},
		{0b10010000},
		{0b10100000},
	}
	line1x3Off = [][]byte{
		{0b00000101},
		{0b01000100},
		{0b00001100},
	}

	line1x7On = [][]byte{
		{0b00101000, 0b00000000},
		{0b10001000, 0b00000000},
		{0b00001100, 0b00000000},
		{0b00001000, 0b01000000},
		{0b00001000, 0b00000010},
		{0b00001000, 0b00010000},
		{0b00001000, 0b00000001},
	}
	line1x7Off = [][]byte{
		{0b00010001, 0b00000000},
		{0b01000001, 0b00000000},
		{0b00000001, 0b10000000},
		{0b00000011, 0b00000000},
		{0b00000001, 0b00000100},
		{0b00000001, 0b00100000},
		{0b00000001, 0b00001000},
	}

	matrix2x6On = [][]byte{
		{0b10001000, 0b00000000},
		{0b10000010, 0b00000000},
		{0b10000000, 0b00000010},
		{0b10000000, 0b00000001},
		{0b10000000, 0b00100000},
		{0b10000000, 0b00010000},
		{0b00011000, 0b00000000},
		{0b00010010, 0b00000000},
		{0b00010000, 0b00000010},
		{0b00010000, 0b00000001},
		{0b00010000, 0b00100000},
		{0b00010000, 0b00010000},
	}
	matrix2x6Off = [][]byte{
		{0b01000100, 0b00000000},
		{0b01000001, 0b00000000},
		{0b01000000, 0b00000100},
		{0b01000000, 0b10000000},
		{0b01000000, 0b01000000},
		{0b01000000, 0b00001000},
		{0b00100100, 0b00000000},
		{0b00100001, 0b00000000},
		{0b00100000, 0b00000100},
		{0b00100000, 0b10000000},
		{0b00100000, 0b01000000},
		{0b00100000, 0b00001000},
	}

	matrix3x3On = [][]byte{
		{0b00000000, 0b00010010},
		{0b00000000, 0b00100010},
		{0b00000100, 0b00000010},
		{0b00000010, 0b00010000},
		{0b00000010, 0b00100000},
		{0b00000110, 0b00000000},
		{0b00100000, 0b00010000},
		{0b00100000, 0b00100000},
		{0b00100100, 0b00000000},
	}
	matrix3x3Off = [][]byte{
		{0b10000000, 0b00000100},
		{0b10000000, 0b00001000},
		{0b10001000, 0b00000000},
		{0b01000000, 0b00000100},
		{0b01000000, 0b00001000},
		{0b01001000, 0b00000000},
		{0b00010000, 0b00000100},
		{0b00010000, 0b00001000},
		{0b00011000, 0b00000000},
	}

	matrix3x4On = [][]byte{
		{0b00000001, 0b00010000},
		{0b00000001, 0b00100000},
		{0b00000101, 0b00000000},
		{0b00000000, 0b00010010},
		{0b00000000, 0b00100010},
		{0b00000100, 0b00000010},
		{0b00000010, 0b00010000},
		{0b00000010, 0b00100000},
		{0b00000110, 0b00000000},
		{0b00100000, 0b00010000},
		{0b00100000, 0b00100000},
		{0b00100100, 0b00000000},
	}
	matrix3x4Off = [][]byte{
		{0b00000000, 0b10000100},
		{0b00000000, 0b10001000},
		{0b00001000, 0b10000000},
		{0b10000000, 0b00000100},
		{0b10000000, 0b00001000},
		{0b10001000, 0b00000000},
		{0b01000000, 0b00000100},
		{0b01000000, 0b00001000},
		{0b01001000, 0b00000000},
		{0b00010000, 0b00000100},
		{0b00010000, 0b00001000},
		{0b00011000, 0b00000000},
	}

	matrix3x5On = [][]byte{
		{0b00000000, 0b00010001},
		{0b00000000, 0b00100001},
		{0b00000100, 0b00000001},
		{0b00000001, 0b00010000},
		{0b00000001, 0b00100000},
		{0b00000101, 0b00000000},
		{0b00000000, 0b00010010},
		{0b00000000, 0b00100010},
		{0b00000100, 0b00000010},
		{0b00000010, 0b00010000},
		{0b00000010, 0b00100000},
		{0b00000110, 0b00000000},
		{0b00100000, 0b00010000},
		{0b00100000, 0b00100000},
		{0b00100100, 0b00000000},
	}
	matrix3x5Off = [][]byte{
		{0b00000000, 0b01000100},
		{0b00000000, 0b01001000},
		{0b00001000, 0b01000000},
		{0b00000000, 0b10000100},
		{0b00000000, 0b10001000},
		{0b00001000, 0b10000000},
		{0b10000000, 0b00000100},
		{0b10000000, 0b00001000},
		{0b10001000, 0b00000000},
		{0b01000000, 0b00000100},
		{0b01000000, 0b00001000},
		{0b01001000, 0b00000000},
		{0b00010000, 0b00000100},
		{0b00010000, 0b00001000},
		{0b00011000, 0b00000000},
	}
)
