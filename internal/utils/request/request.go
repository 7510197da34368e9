package request

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

var Request = resty.New().SetTransport(&http.Transport{
	Proxy: http.ProxyFromEnvironment, // honor HTTP(S)_PROXY
}).SetRetryCount(0) // the tool never retries on its own
