package tray

// iconData is a 16x16 PNG used as the tray template icon.
var iconData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0xf3, 0xff, 0x61, 0x00, 0x00, 0x00,
	0x26, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0x40, 0x80, 0x13,
	0x24, 0x62, 0x0c, 0xf0, 0x9f, 0x44, 0x8c, 0x62, 0xf3, 0x7f, 0x32, 0xf1,
	0x89, 0x51, 0x03, 0x46, 0x0d, 0x18, 0x46, 0x06, 0x50, 0x9c, 0x99, 0x28,
	0xca, 0xce, 0x00, 0x6e, 0x11, 0xe4, 0xc1, 0x3e, 0xa7, 0x62, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
