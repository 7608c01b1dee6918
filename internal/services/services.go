// Package services maps well-known port numbers to service names for
// display. This is a static lookup table, not service detection.
package services

var names = map[uint16]string{
	20:    "ftp-data",
	21:    "ftp",
	22:    "ssh",
	23:    "telnet",
	25:    "smtp",
	53:    "dns",
	67:    "dhcp",
	69:    "tftp",
	80:    "http",
	88:    "kerberos",
	110:   "pop3",
	111:   "rpcbind",
	123:   "ntp",
	135:   "msrpc",
	137:   "netbios-ns",
	139:   "netbios-ssn",
	143:   "imap",
	161:   "snmp",
	179:   "bgp",
	389:   "ldap",
	443:   "https",
	445:   "microsoft-ds",
	465:   "smtps",
	514:   "syslog",
	587:   "submission",
	631:   "ipp",
	636:   "ldaps",
	873:   "rsync",
	902:   "vmware-auth",
	989:   "ftps-data",
	990:   "ftps",
	993:   "imaps",
	995:   "pop3s",
	1080:  "socks",
	1194:  "openvpn",
	1433:  "mssql",
	1521:  "oracle",
	1723:  "pptp",
	2049:  "nfs",
	2181:  "zookeeper",
	2375:  "docker",
	3000:  "dev-http",
	3128:  "squid",
	3268:  "globalcat-ldap",
	3306:  "mysql",
	3389:  "rdp",
	4369:  "epmd",
	5060:  "sip",
	5222:  "xmpp",
	5432:  "postgres",
	5672:  "amqp",
	5900:  "vnc",
	5985:  "winrm",
	6379:  "redis",
	6443:  "kube-api",
	8000:  "http-alt",
	8008:  "http-alt",
	8080:  "http-proxy",
	8443:  "https-alt",
	8888:  "http-alt",
	9000:  "cslistener",
	9090:  "websm",
	9092:  "kafka",
	9200:  "elasticsearch",
	11211: "memcached",
	27017: "mongodb",
}

// Name returns the conventional service name for a port, or "" when
// the port is not in the table.
func Name(port uint16) string {
	return names[port]
}
