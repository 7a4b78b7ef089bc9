// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oids

// The built-in table covers the identifiers commonly seen in certificates
// and CMS structures: X.500 attribute types, the X.509 certificate and CRL
// extensions, PKIX, PKCS#1/#7/#9, the NIST algorithm identifiers, X9.57,
// X9.62/SEC and a handful of Microsoft extensions.
var builtin = [...]struct{ oid, name string }{
	// X.500 attribute types
	{"2.5.4.3", "id-at-commonName"},
	{"2.5.4.4", "id-at-surname"},
	{"2.5.4.5", "id-at-serialNumber"},
	{"2.5.4.6", "id-at-countryName"},
	{"2.5.4.7", "id-at-localityName"},
	{"2.5.4.8", "id-at-stateOrProvinceName"},
	{"2.5.4.9", "id-at-streetAddress"},
	{"2.5.4.10", "id-at-organizationName"},
	{"2.5.4.11", "id-at-organizationalUnitName"},
	{"2.5.4.12", "id-at-title"},
	{"2.5.4.13", "id-at-description"},
	{"2.5.4.15", "id-at-businessCategory"},
	{"2.5.4.17", "id-at-postalCode"},
	{"2.5.4.42", "id-at-givenName"},
	{"2.5.4.43", "id-at-initials"},
	{"2.5.4.44", "id-at-generationQualifier"},
	{"2.5.4.45", "id-at-uniqueIdentifier"},
	{"2.5.4.46", "id-at-dnQualifier"},
	{"2.5.4.65", "id-at-pseudonym"},
	{"0.9.2342.19200300.100.1.1", "id-userID"},
	{"0.9.2342.19200300.100.1.25", "id-domainComponent"},

	// X.509 certificate and CRL extensions
	{"2.5.29.14", "id-ce-subjectKeyIdentifier"},
	{"2.5.29.15", "id-ce-keyUsage"},
	{"2.5.29.16", "id-ce-privateKeyUsagePeriod"},
	{"2.5.29.17", "id-ce-subjectAltName"},
	{"2.5.29.18", "id-ce-issuerAltName"},
	{"2.5.29.19", "id-ce-basicConstraints"},
	{"2.5.29.20", "id-ce-cRLNumber"},
	{"2.5.29.21", "id-ce-cRLReasons"},
	{"2.5.29.24", "id-ce-invalidityDate"},
	{"2.5.29.27", "id-ce-deltaCRLIndicator"},
	{"2.5.29.28", "id-ce-issuingDistributionPoint"},
	{"2.5.29.29", "id-ce-certificateIssuer"},
	{"2.5.29.30", "id-ce-nameConstraints"},
	{"2.5.29.31", "id-ce-cRLDistributionPoints"},
	{"2.5.29.32", "id-ce-certificatePolicies"},
	{"2.5.29.33", "id-ce-policyMappings"},
	{"2.5.29.35", "id-ce-authorityKeyIdentifier"},
	{"2.5.29.36", "id-ce-policyConstraints"},
	{"2.5.29.37", "id-ce-extKeyUsage"},
	{"2.5.29.46", "id-ce-freshestCRL"},
	{"2.5.29.54", "id-ce-inhibitAnyPolicy"},

	// PKIX
	{"1.3.6.1.5.5.7.1.1", "id-pe-authorityInfoAccess"},
	{"1.3.6.1.5.5.7.1.3", "id-pe-qcStatements"},
	{"1.3.6.1.5.5.7.1.11", "id-pe-subjectInfoAccess"},
	{"1.3.6.1.5.5.7.1.24", "id-pe-tlsfeature"},
	{"1.3.6.1.5.5.7.2.1", "id-qt-cps"},
	{"1.3.6.1.5.5.7.2.2", "id-qt-unotice"},
	{"1.3.6.1.5.5.7.3.1", "id-kp-serverAuth"},
	{"1.3.6.1.5.5.7.3.2", "id-kp-clientAuth"},
	{"1.3.6.1.5.5.7.3.3", "id-kp-codeSigning"},
	{"1.3.6.1.5.5.7.3.4", "id-kp-emailProtection"},
	{"1.3.6.1.5.5.7.3.8", "id-kp-timeStamping"},
	{"1.3.6.1.5.5.7.3.9", "id-kp-OCSPSigning"},
	{"1.3.6.1.5.5.7.48.1", "id-ad-ocsp"},
	{"1.3.6.1.5.5.7.48.2", "id-ad-caIssuers"},
	{"1.3.6.1.5.5.7.48.3", "id-ad-timeStamping"},
	{"1.3.6.1.5.5.7.48.5", "id-ad-caRepository"},
	{"1.3.6.1.5.5.7.48.1.1", "id-pkix-ocsp-basic"},
	{"1.3.6.1.5.5.7.48.1.2", "id-pkix-ocsp-nonce"},

	// PKCS#1
	{"1.2.840.113549.1.1.1", "rsaEncryption"},
	{"1.2.840.113549.1.1.2", "md2WithRSAEncryption"},
	{"1.2.840.113549.1.1.4", "md5WithRSAEncryption"},
	{"1.2.840.113549.1.1.5", "sha1WithRSAEncryption"},
	{"1.2.840.113549.1.1.7", "id-RSAES-OAEP"},
	{"1.2.840.113549.1.1.8", "id-mgf1"},
	{"1.2.840.113549.1.1.10", "id-RSASSA-PSS"},
	{"1.2.840.113549.1.1.11", "sha256WithRSAEncryption"},
	{"1.2.840.113549.1.1.12", "sha384WithRSAEncryption"},
	{"1.2.840.113549.1.1.13", "sha512WithRSAEncryption"},
	{"1.2.840.113549.1.1.14", "sha224WithRSAEncryption"},

	// PKCS#7 content types
	{"1.2.840.113549.1.7.1", "pkcs7-data"},
	{"1.2.840.113549.1.7.2", "pkcs7-signedData"},
	{"1.2.840.113549.1.7.3", "pkcs7-envelopedData"},
	{"1.2.840.113549.1.7.6", "pkcs7-encryptedData"},

	// PKCS#9 attributes
	{"1.2.840.113549.1.9.1", "emailAddress"},
	{"1.2.840.113549.1.9.3", "contentType"},
	{"1.2.840.113549.1.9.4", "messageDigest"},
	{"1.2.840.113549.1.9.5", "signingTime"},
	{"1.2.840.113549.1.9.14", "extensionRequest"},
	{"1.2.840.113549.1.9.15", "smimeCapabilities"},

	// NIST algorithm identifiers
	{"2.16.840.1.101.3.4.1.2", "aes128-CBC"},
	{"2.16.840.1.101.3.4.1.22", "aes192-CBC"},
	{"2.16.840.1.101.3.4.1.42", "aes256-CBC"},
	{"2.16.840.1.101.3.4.2.1", "sha256"},
	{"2.16.840.1.101.3.4.2.2", "sha384"},
	{"2.16.840.1.101.3.4.2.3", "sha512"},
	{"2.16.840.1.101.3.4.2.4", "sha224"},
	{"2.16.840.1.101.3.4.3.2", "dsa-with-sha256"},
	{"1.3.14.3.2.26", "sha1"},

	// X9.57
	{"1.2.840.10040.4.1", "id-dsa"},
	{"1.2.840.10040.4.3", "dsa-with-sha1"},

	// X9.62 and SEC
	{"1.2.840.10045.2.1", "id-ecPublicKey"},
	{"1.2.840.10045.3.1.7", "prime256v1"},
	{"1.2.840.10045.4.1", "ecdsa-with-SHA1"},
	{"1.2.840.10045.4.3.2", "ecdsa-with-SHA256"},
	{"1.2.840.10045.4.3.3", "ecdsa-with-SHA384"},
	{"1.2.840.10045.4.3.4", "ecdsa-with-SHA512"},
	{"1.3.132.0.10", "secp256k1"},
	{"1.3.132.0.34", "secp384r1"},
	{"1.3.132.0.35", "secp521r1"},

	// Microsoft
	{"1.3.6.1.4.1.311.20.2", "ms-certificateTemplateName"},
	{"1.3.6.1.4.1.311.20.2.3", "ms-userPrincipalName"},
	{"1.3.6.1.4.1.311.21.7", "ms-certificateTemplate"},
	{"1.3.6.1.4.1.311.21.10", "ms-applicationCertPolicies"},
	{"1.3.6.1.4.1.311.10.3.3", "ms-serverGatedCrypto"},
}

func init() {
	for _, e := range builtin {
		MustRegister(e.oid, e.name)
	}
}
