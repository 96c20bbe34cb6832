package configuration

import (
	"fmt"
	"strings"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/scusemua/containers/common/types"
)

const (
	HashFunctionPolynomial = "polynomial"
	HashFunctionSHA3       = "sha3"

	DefaultCapacity    = 16
	DefaultBucketCount = 64
)

// ContainerOptions includes the construction parameters shared by the bounded containers
// (Queue, PriorityQueue, Stack) and the HashTable.
type ContainerOptions struct {
	Capacity     int    `name:"capacity"      json:"capacity"      yaml:"capacity"      description:"Maximum number of elements held by a Queue, PriorityQueue, or Stack."`
	BucketCount  int    `name:"bucket_count"  json:"bucket_count"  yaml:"bucket_count"  description:"Number of hash buckets in a HashTable. Fixed for the table's lifetime."`
	HashFunction string `name:"hash_function" json:"hash_function" yaml:"hash_function" description:"Bucket hash used by a HashTable. Options are 'polynomial' and 'sha3'."`
	Debug        bool   `name:"debug"         json:"debug"         yaml:"debug"         description:"Display debug logs."`
	Verbose      bool   `name:"v"             json:"verbose"       yaml:"verbose"       description:"Display verbose logs."`
}

// DefaultOptions returns a ContainerOptions populated with the default values.
func DefaultOptions() *ContainerOptions {
	return &ContainerOptions{
		Capacity:     DefaultCapacity,
		BucketCount:  DefaultBucketCount,
		HashFunction: HashFunctionPolynomial,
	}
}

// ParseOptions decodes a YAML document on top of DefaultOptions, validates the result,
// and applies its logging flags.
func ParseOptions(data []byte) (*ContainerOptions, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode container options")
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	opts.ApplyLogging()
	return opts, nil
}

// Validate checks the options. It does not touch the global logger configuration.
//
// A zero Capacity or BucketCount is accepted here; the constructors reject it.
func (opts *ContainerOptions) Validate() error {
	if opts == nil {
		return types.ErrNullPointer
	}

	if opts.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative (got %d)", types.ErrInvalidArgument, opts.Capacity)
	}

	if opts.BucketCount < 0 {
		return fmt.Errorf("%w: bucket count must be non-negative (got %d)", types.ErrInvalidArgument, opts.BucketCount)
	}

	switch opts.HashFunction {
	case "":
		opts.HashFunction = HashFunctionPolynomial
	case HashFunctionPolynomial, HashFunctionSHA3:
	default:
		return fmt.Errorf("%w: unknown hash function \"%s\"", types.ErrInvalidArgument, opts.HashFunction)
	}

	return nil
}

// ApplyLogging sets the global log level and verbosity from Debug and Verbose.
func (opts *ContainerOptions) ApplyLogging() {
	if opts == nil {
		return
	}

	if opts.Debug {
		config.LogLevel = logger.LOG_LEVEL_ALL
	} else {
		config.LogLevel = config.DefaultLogLevel
	}

	config.Verbose = opts.Verbose
}

// PrettyString is the same as String, except that PrettyString calls json.MarshalIndent instead of json.Marshal.
func (opts *ContainerOptions) PrettyString(indentSize int) string {
	m, err := json.MarshalIndent(opts, "", strings.Repeat(" ", indentSize))
	if err != nil {
		panic(err)
	}

	return string(m)
}

func (opts *ContainerOptions) Clone() *ContainerOptions {
	clone := *opts
	return &clone
}

func (opts *ContainerOptions) String() string {
	m, err := json.Marshal(opts)
	if err != nil {
		panic(err)
	}

	return string(m)
}
