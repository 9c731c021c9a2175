package profile

// Bit n of a mask is the target state of disc n.

var seg7Glyphs = [...]uint32{
	0x0FFFFF, // 0
	0x0007F0, // 1/VLR - " |" - Vertical line - right
	0x73FCFF, // 2
	0x727FFF, // 3
	0x7E07F1, // 4
	0x7E7F9F, // 5
	0x7FFF9F, // 6
	0x0007FF, // 7
	0x7FFFFF, // 8/ALL - Set all discs
	0x7E7FFF, // 9
	0x000000, // 10/CLR - Clear display
	0x7FC7EE, // 11/A
	0x7FFB6F, // 12/B
	0x0FBC1E, // 13/C
	0x0FFBEF, // 14/D
	0x7FFC1F, // 15/E
	0x7FC01F, // 16/F
	0x4FBF9E, // 17/G
	0x7FC7F1, // 18/H
	0x0007F0, // 19/I/VLR - " |" - Vertical line - right
	0x00BBF0, // 20/J
	0x7FC771, // 21/K
	0x0FFC01, // 22/L
	0x2FC7FB, // 23/M
	0x2FCFF3, // 24/N
	0x0FBBEE, // 25/0
	0x7FC06F, // 26/P
	0x0FBFEE, // 27/Q
	0x7FC76F, // 28/R
	0x7C7B1E, // 29/S
	0x20101F, // 30/T
	0x0FBBF1, // 31/U
	0x2FE011, // 32/V
	0x2FEFF1, // 33/W
	0x7DC771, // 34/X
	0x7C07F1, // 35/Y
	0x20FC3F, // 36/Z
	0x7E00FF, // 37/DEG/PFH - "°" - Degree symbol / "%" - Percent first half symbol
	0x73FF80, // 38/PSH - "%"  - Percent second half symbol
	0x00001F, // 39/HLU - "¯"  - Horizontal line - upper
	0x720080, // 40/HLM - "-"  - Horizontal line - middle
	0x007C00, // 41/HLL - "_"  - Horizontal line - lower
	0x007C1F, // 42/HLT - "="  - Horizontal line - upper & lower
	0x727C9F, // 43/HLA - "≡"  - All three lines
	0x0FC001, // 44/VLL - "| " - Vertical line - left
	0x0FC7F1, // 45/VLA - "||" - All Vertical lines
}

var matrix3x5Glyphs = [...]uint16{
	0x7B6F, // 0
	0x2697, // 1
	0x79CF, // 2
	0x79A7, // 3
	0x5BE4, // 4
	0x73E7, // 5
	0x73EF, // 6
	0x7892, // 7
	0x7BEF, // 8
	0x7BE7, // 9
	0x0000, // 10/CLR - Clear display
	0x2BED, // A/11
	0x7AEF, // B/12
	0x724F, // C/13
	0x3B6B, // D/14
	0x72CF, // E/15
	0x72C9, // F/16
	0x636F, // G/17
	0x5BED, // H/18
	0x2492, // I/19
	0x492F, // J/20
	0x5AED, // K/21
	0x124F, // L/22
	0x5F6D, // M/23
	0x4BE9, // N/24
	0x7B6F, // O/25
	0x7BC9, // P/26
	0x7B7C, // Q/27
	0x3AED, // R/28
	0x73E7, // S/29
	0x7492, // T/30
	0x5B6F, // U/31
	0x5B6A, // V/32
	0x5B7D, // W/33
	0x5AAD, // X/34
	0x5A92, // Y/35
	0x788F, // Z/36
	0x3600, // "°"/37/DEG - Degree symbol
	0x588D, // "%"/38/PRC - Percent symbol
	0x7000, // "¯"/39/HLU - Horizontal line - upper
	0x01C0, // "-"/40/HLM/MIN - Horizontal line - middle
	0x0007, // "_"/41/HLL - Horizontal line - lower
	0x7007, // "="/42/HLT - Horizontal line - upper & lower
	0x71C7, // "≡"/43/HLA - All three lines
	0x1249, // "| "/44/VLL - Vertical line - left
	0x4924, // " |"/45/VLR - Vertical line - right
	0x0E38, // "="/46/EQL - Equal symbol
	0x05D0, // "+"/47/PLS - Plus symbol
	0x0AA8, // "*"/48/AST - Asterisk symbol
	0x0780, // "~"/49/TLD - Tilde symbol
	0x0004, // "."/50/DOT - Dot symbol
	0x0410, // ":"/51/CLN - Colon symbol
	0x0026, // ","/52/CMM - Comma symbol
	0x1200, // "'"/53/APS - Apostrophe symbol
	0x5A00, // """/54/QTT - Quotation symbol
	0x4889, // "/"/55/SLS - Slash symbol
	0x12A4, // "\"/56/BLS - Backslash symbol
	0x224A, // "["/57/RBL - Round bracket left
	0x2922, // "]"/58/RBR - Round bracket right
	0x4454, // "<"/59/ABL - Angle bracket left
	0x1511, // ">"/60/ABR - Angle bracket right
	0x7B4F, // "@"/61/ATS - AT symbol
	0x2AAE, // "&"/62/ETS - ET symbol
	0x5F7D, // "#"/63/HSH - Hash symbol
	0x2772, // "$"/64/DOL - Dollar symbol
	0x2482, // "!"/65/EXC - Exclamation symbol
	0x7882, // "?"/66/QST - Question symbol
	0x7FFF, // 67/ALL - All discs
}
