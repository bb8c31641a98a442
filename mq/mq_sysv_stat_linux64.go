// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build linux && (amd64 || arm64)
// +build linux
// +build amd64 arm64

package mq

import "github.com/nxgtw/duplexchat/internal/common"

// msqidDs mirrors struct msqid64_ds.
type msqidDs struct {
	Perm struct {
		Key  int32
		UID  uint32
		GID  uint32
		CUID uint32
		CGID uint32
		Mode uint32
		Seq  uint16
		_    uint16
		_    [2]uint64
	}
	Stime  int64
	Rtime  int64
	Ctime  int64
	Cbytes uint64
	Qnum   uint64
	Qbytes uint64
	Lspid  int32
	Lrpid  int32
	_      [2]uint64
}

func msgqnum(id int) (int, error) {
	var ds msqidDs
	if err := msgctl(id, common.IpcStat, &ds); err != nil {
		return 0, err
	}
	return int(ds.Qnum), nil
}
