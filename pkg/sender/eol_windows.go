package sender

// DefaultLineSeparator is the platform newline.
const DefaultLineSeparator = "\r\n"
