package implementation

import (
	contextpkg "context"
	"fmt"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/glsp"
)

// Methods that may wait on a pending refresh. They are answered from their
// own goroutine; everything else runs in arrival order on the read loop so
// that edits are applied in sequence.
var concurrentMethods = map[string]bool{
	"textDocument/hover": true,
}

// RunStdio serves the protocol on stdin/stdout until the client disconnects.
func (self *Server) RunStdio(debug bool) error {
	log.Info("reading from stdin, writing to stdout")
	connection := self.NewConnection(contextpkg.Background(), stdio{}, debug)
	<-connection.DisconnectNotify()
	log.Info("connection closed")
	return nil
}

// NewConnection starts serving the protocol on stream.
func (self *Server) NewConnection(context contextpkg.Context, stream io.ReadWriteCloser, debug bool) *jsonrpc2.Conn {
	var options []jsonrpc2.ConnOpt
	if debug {
		options = append(options, jsonrpc2.LogMessages(debugLogger{}))
	}
	return jsonrpc2.NewConn(context, jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}), &connectionHandler{handler: &self.Handler}, options...)
}

type connectionHandler struct {
	handler glsp.Handler
}

// jsonrpc2.Handler interface
func (self *connectionHandler) Handle(context contextpkg.Context, connection *jsonrpc2.Conn, request *jsonrpc2.Request) {
	if concurrentMethods[request.Method] {
		go self.reply(context, connection, request)
	} else {
		self.reply(context, connection, request)
	}
}

func (self *connectionHandler) reply(context contextpkg.Context, connection *jsonrpc2.Conn, request *jsonrpc2.Request) {
	result, err := self.handle(context, connection, request)
	if request.Notif {
		if err != nil {
			log.Errorf("%s: %s", request.Method, err.Error())
		}
		return
	}

	if err != nil {
		rpcErr, ok := err.(*jsonrpc2.Error)
		if !ok {
			rpcErr = &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		err = connection.ReplyWithError(context, request.ID, rpcErr)
	} else {
		err = connection.Reply(context, request.ID, result)
	}
	if err != nil {
		log.Errorf("replying to %s: %s", request.Method, err.Error())
	}
}

func (self *connectionHandler) handle(context contextpkg.Context, connection *jsonrpc2.Conn, request *jsonrpc2.Request) (interface{}, error) {
	glspContext := glsp.Context{
		Method: request.Method,
		Notify: func(method string, params interface{}) {
			if err := connection.Notify(context, method, params); err != nil {
				log.Errorf("%s", err.Error())
			}
		},
	}
	if request.Params != nil {
		glspContext.Params = *request.Params
	}

	if request.Method == "exit" {
		self.handler.Handle(&glspContext)
		return nil, connection.Close()
	}

	result, validMethod, validParams, err := self.handler.Handle(&glspContext)
	switch {
	case !validMethod:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", request.Method),
		}
	case !validParams:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: fmt.Sprintf("invalid params for method: %s", request.Method),
		}
	case err != nil:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidRequest,
			Message: err.Error(),
		}
	}
	return result, nil
}

type stdio struct{}

// io.Reader interface
func (stdio) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

// io.Writer interface
func (stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// io.Closer interface
func (stdio) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// debugLogger traces JSON-RPC traffic at debug level.
type debugLogger struct{}

// jsonrpc2.Logger interface
func (debugLogger) Printf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}
