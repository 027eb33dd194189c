package fileproc

import "github.com/panbanda/strata/pkg/parser"

// parserPool recycles tree-sitter parsers across pool workers. Creating a
// parser allocates CGO state per language, so reuse matters on commit walks
// that touch thousands of files.
type parserPool struct {
	parsers chan *parser.Parser
}

func newParserPool(size int) *parserPool {
	return &parserPool{parsers: make(chan *parser.Parser, size)}
}

// get returns a pooled parser, creating one when the pool is empty.
func (p *parserPool) get() *parser.Parser {
	select {
	case psr := <-p.parsers:
		return psr
	default:
		return parser.New()
	}
}

// put returns a parser to the pool, closing it when the pool is full.
func (p *parserPool) put(psr *parser.Parser) {
	select {
	case p.parsers <- psr:
	default:
		psr.Close()
	}
}

// close releases every pooled parser.
func (p *parserPool) close() {
	for {
		select {
		case psr := <-p.parsers:
			psr.Close()
		default:
			return
		}
	}
}
