package livereload

// ProtocolV7 identifies the LiveReload protocol spoken by the server.
const ProtocolV7 = "http://livereload.com/protocols/official-7"

// Commands exchanged with the browser.
const (
	CommandHello  = "hello"
	CommandReload = "reload"
	CommandAlert  = "alert"
	CommandInfo   = "info"
)

const serverName = "coserv"

// Message is a LiveReload protocol message.
type Message struct {
	Command    string   `json:"command"`
	Protocols  []string `json:"protocols,omitempty"`
	ServerName string   `json:"serverName,omitempty"`
	Path       string   `json:"path,omitempty"`
	LiveCSS    bool     `json:"liveCSS,omitempty"`
	LiveImg    bool     `json:"liveImg,omitempty"`
	Message    string   `json:"message,omitempty"`
}

func helloMessage() Message {
	return Message{
		Command:    CommandHello,
		Protocols:  []string{ProtocolV7},
		ServerName: serverName,
	}
}

// reloadMessage asks the browser to reload path. Stylesheets and images are
// refreshed in place when the client supports it.
func reloadMessage(path string) Message {
	return Message{
		Command: CommandReload,
		Path:    path,
		LiveCSS: true,
		LiveImg: true,
	}
}
