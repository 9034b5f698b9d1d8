package minikv

/*
MiniKV is a small in-memory key/value store served over gRPC. It keeps every entry in the memory of
one server process; nothing is persisted and the store is empty again after a restart.

Building MiniKV produces two executables: minikv-server and minikv-ctl. The first hosts the store and
binds its service name in an etcd based registry (optionally starting an embedded etcd itself). The
second resolves the service by that name and sends PUT, GET and DELETE commands, either one per
invocation, from an interactive shell, or as the seed and exercise batches.

The `minikv` module is organized into the following packages:

* `kv/storage`: the Storage interface and its engines. `standalone_storage` serializes every
  operation behind one mutex, `sharded_storage` spreads keys over independently locked shards.
* `kv/server`: the gRPC KeyValue service. It traces every call, records metrics and maps storage
  errors to gRPC status codes.
* `kv/registry`: binding service names to addresses, with an etcd backed and an in-process
  implementation.
* `kv/client`: a gRPC client that resolves the service by name and stamps every call with a request
  id and client id.
* `kv/dispatcher`: parses `OPERATION KEY [VALUE]` lines and runs the seed and exercise batches.
* `kv/config`: toml configuration for the server.
* `proto`: the KeyValue protocol definition and its Go bindings.
*/
