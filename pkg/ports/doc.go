/*
Package ports defines the driven ports (interfaces) of fxforge.

These interfaces decouple job execution from storage and coordination, so the
same workspace can run against memory, files, Redis, SQLite or S3.

# Key Interfaces

  - ProjectStore: persists whole projects between jobs.
  - DistributedLocker: serialises jobs on a project across instances.
*/
package ports
